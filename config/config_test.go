package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/blinds/audio"
	"github.com/lixenwraith/blinds/capture"
	"github.com/lixenwraith/blinds/constants"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	if cfg.Strips.Count != 20 {
		t.Errorf("Expected 20 strips, got %d", cfg.Strips.Count)
	}
	if time.Duration(cfg.Timing.Entrance) != 300*time.Millisecond {
		t.Errorf("Expected 300ms entrance, got %v", time.Duration(cfg.Timing.Entrance))
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got %v", err)
	}
	if cfg.Strips.Count != constants.DefaultStripCount {
		t.Errorf("Expected default strip count, got %d", cfg.Strips.Count)
	}

	if cfg, err := LoadConfig(""); err != nil || cfg == nil {
		t.Errorf("Expected defaults for empty path, got %v", err)
	}
}

func TestLoadPartialTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blinds.toml")
	data := `
[strips]
count = 8

[timing]
settle = "250ms"

[gesture]
velocity_threshold = 1200.0
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Strips.Count != 8 {
		t.Errorf("Expected 8 strips, got %d", cfg.Strips.Count)
	}
	if time.Duration(cfg.Timing.Settle) != 250*time.Millisecond {
		t.Errorf("Expected 250ms settle, got %v", time.Duration(cfg.Timing.Settle))
	}
	if cfg.Gesture.VelocityThreshold != 1200 {
		t.Errorf("Expected threshold 1200, got %v", cfg.Gesture.VelocityThreshold)
	}
	// Untouched keys keep defaults
	if time.Duration(cfg.Timing.Entrance) != constants.EntranceDuration {
		t.Errorf("Expected default entrance, got %v", time.Duration(cfg.Timing.Entrance))
	}
	if cfg.Capture.Source != SourceCard {
		t.Errorf("Expected card source, got %q", cfg.Capture.Source)
	}
}

func TestLoadPartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blinds.yml")
	data := `
strips:
  count: 5
timing:
  chase: 60ms
capture:
  source: file
  path: snapshot.png
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Strips.Count != 5 || time.Duration(cfg.Timing.Chase) != 60*time.Millisecond {
		t.Errorf("Unexpected values: count=%d chase=%v", cfg.Strips.Count, time.Duration(cfg.Timing.Chase))
	}
	if fc, ok := cfg.Capturer(10, 10).(capture.FileCapturer); !ok || fc.Path != "snapshot.png" {
		t.Errorf("Expected file capturer for snapshot.png, got %#v", cfg.Capturer(10, 10))
	}
}

func TestSaveAndReload(t *testing.T) {
	for _, name := range []string{"out.toml", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := DefaultConfig()
			cfg.Strips.Count = 12
			cfg.Timing.Settle = Duration(150 * time.Millisecond)
			if err := SaveConfig(cfg, path); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "150ms") {
				t.Errorf("Expected durations written as strings, got:\n%s", data)
			}

			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if *loaded != *cfg {
				t.Errorf("Expected %+v, got %+v", cfg, loaded)
			}
		})
	}
}

func TestFormatErrors(t *testing.T) {
	if _, err := LoadConfig("blinds.ini"); !errors.Is(err, ErrFormat) {
		t.Errorf("Expected ErrFormat, got %v", err)
	}
	if err := DefaultConfig().Encode(&bytes.Buffer{}, Format("xml")); !errors.Is(err, ErrFormat) {
		t.Errorf("Expected ErrFormat from Encode, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte(`[timing]
settle = "soon"`), 0644)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected parse error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"Zero strips", func(c *Config) { c.Strips.Count = 0 }},
		{"Too many strips", func(c *Config) { c.Strips.Count = constants.MaxStripCount + 1 }},
		{"Negative settle", func(c *Config) { c.Timing.Settle = Duration(-time.Millisecond) }},
		{"Zero frame", func(c *Config) { c.Timing.Frame = 0 }},
		{"Negative threshold", func(c *Config) { c.Gesture.VelocityThreshold = -1 }},
		{"Volume above one", func(c *Config) { c.Audio.MasterVolume = 1.5 }},
		{"File without path", func(c *Config) { c.Capture.Source = SourceFile }},
		{"Unknown source", func(c *Config) { c.Capture.Source = "camera" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strips.Count = 7
	cfg.Gesture.MovedThreshold = 4

	opts := cfg.Options(120, 60)
	if opts.Strips != 7 || opts.ScreenWidth != 120 || opts.ScreenHeight != 60 {
		t.Errorf("Unexpected geometry in %+v", opts)
	}
	if opts.MovedThreshold != 4 || opts.SettleDuration != constants.SettleDuration {
		t.Errorf("Unexpected tuning in %+v", opts)
	}

	card, ok := cfg.Capturer(30, 40).(*capture.CardCapturer)
	if !ok || card.Width != 30 || card.Title != "Headphones" {
		t.Errorf("Expected default card capturer, got %#v", cfg.Capturer(30, 40))
	}
}

func TestAudioSettings(t *testing.T) {
	t.Setenv(audio.EnvMasterVolume, "")

	cfg := DefaultConfig()
	cfg.Audio.MasterVolume = 0.25
	out := cfg.AudioSettings(audio.DefaultAudioConfig())
	if !out.Enabled || out.MasterVolume != 0.25 {
		t.Errorf("Expected enabled at 0.25, got %+v", out)
	}

	cfg.Audio.Enabled = false
	if cfg.AudioSettings(nil).Enabled {
		t.Error("Expected file to mute audio")
	}

	t.Setenv(audio.EnvMasterVolume, "80")
	cfg.Audio.Enabled = true
	if got := cfg.AudioSettings(audio.LoadAudioConfig()).MasterVolume; got != 0.8 {
		t.Errorf("Expected environment volume 0.8 to win, got %v", got)
	}
}
