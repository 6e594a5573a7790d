// Package config loads blinds settings from TOML or YAML files
// The format is chosen by file extension; a missing file yields the defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/blinds/audio"
	"github.com/lixenwraith/blinds/capture"
	"github.com/lixenwraith/blinds/constants"
	"github.com/lixenwraith/blinds/reveal"
)

var (
	ErrFormat  = errors.New("unsupported config format")
	ErrInvalid = errors.New("invalid config")
)

// Format is a config file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
}

// Capture sources
const (
	SourceCard = "card"
	SourceFile = "file"
)

// Duration is a time.Duration written as a string such as "300ms"
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config is the full application configuration
type Config struct {
	Strips struct {
		// Count is the number of horizontal strips the capture is cut into
		Count int `toml:"count" yaml:"count"`
	} `toml:"strips" yaml:"strips"`

	Timing struct {
		Entrance Duration `toml:"entrance" yaml:"entrance"`
		Settle   Duration `toml:"settle" yaml:"settle"`
		Chase    Duration `toml:"chase" yaml:"chase"`
		Frame    Duration `toml:"frame" yaml:"frame"`
	} `toml:"timing" yaml:"timing"`

	Gesture struct {
		// VelocityThreshold in px/s, releases strictly faster commit
		VelocityThreshold float64 `toml:"velocity_threshold" yaml:"velocityThreshold"`
		// MovedThreshold is the opacity strip offset above which strips replace the content
		MovedThreshold float64  `toml:"moved_threshold" yaml:"movedThreshold"`
		VelocityWindow Duration `toml:"velocity_window" yaml:"velocityWindow"`
	} `toml:"gesture" yaml:"gesture"`

	Capture struct {
		// Source is "card" for the rendered detail view or "file" for Path
		Source   string `toml:"source" yaml:"source"`
		Path     string `toml:"path" yaml:"path"`
		Title    string `toml:"title" yaml:"title"`
		Subtitle string `toml:"subtitle" yaml:"subtitle"`
	} `toml:"capture" yaml:"capture"`

	Audio struct {
		Enabled      bool    `toml:"enabled" yaml:"enabled"`
		MasterVolume float64 `toml:"master_volume" yaml:"masterVolume"`
	} `toml:"audio" yaml:"audio"`

	Log struct {
		Debug bool   `toml:"debug" yaml:"debug"`
		File  string `toml:"file" yaml:"file"`
		Level string `toml:"level" yaml:"level"`
	} `toml:"log" yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Strips.Count = constants.DefaultStripCount

	cfg.Timing.Entrance = Duration(constants.EntranceDuration)
	cfg.Timing.Settle = Duration(constants.SettleDuration)
	cfg.Timing.Chase = Duration(constants.ChaseDuration)
	cfg.Timing.Frame = Duration(constants.FrameUpdateInterval)

	cfg.Gesture.VelocityThreshold = constants.VelocityThreshold
	cfg.Gesture.MovedThreshold = constants.MovedThreshold
	cfg.Gesture.VelocityWindow = Duration(constants.VelocityWindow)

	cfg.Capture.Source = SourceCard
	cfg.Capture.Title = "Headphones"
	cfg.Capture.Subtitle = "Swipe right to close"

	cfg.Audio.Enabled = true
	cfg.Audio.MasterVolume = 0.5

	cfg.Log.File = "logs/blinds.log"
	cfg.Log.Level = "info"

	return cfg
}

// LoadConfig reads path over the defaults
// If the file doesn't exist, it returns the default configuration
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.decode(data, format); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte, format Format) error {
	switch format {
	case FormatTOML:
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(c)
		return err
	case FormatYAML:
		return yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
}

// Encode writes cfg to w in the given format
func (c *Config) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
}

// SaveConfig writes cfg to path, creating the directory if needed
func SaveConfig(cfg *Config, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf, format); err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Strips.Count >= 1 && c.Strips.Count <= constants.MaxStripCount,
		"strips.count %d outside 1..%d", c.Strips.Count, constants.MaxStripCount)
	check(c.Timing.Entrance >= 0, "timing.entrance is negative")
	check(c.Timing.Settle >= 0, "timing.settle is negative")
	check(c.Timing.Chase >= 0, "timing.chase is negative")
	check(c.Timing.Frame > 0, "timing.frame must be positive")
	check(c.Gesture.VelocityThreshold >= 0, "gesture.velocity_threshold is negative")
	check(c.Gesture.MovedThreshold >= 0, "gesture.moved_threshold is negative")
	check(c.Gesture.VelocityWindow > 0, "gesture.velocity_window must be positive")
	check(c.Audio.MasterVolume >= 0 && c.Audio.MasterVolume <= 1,
		"audio.master_volume %v outside 0..1", c.Audio.MasterVolume)

	switch c.Capture.Source {
	case SourceCard:
	case SourceFile:
		check(c.Capture.Path != "", "capture.path is required for the file source")
	default:
		check(false, "capture.source %q is not %q or %q", c.Capture.Source, SourceCard, SourceFile)
	}

	return errors.Join(errs...)
}

// Options builds controller options for a screen of the given logical size
func (c *Config) Options(width, height float64) reveal.Options {
	opts := reveal.DefaultOptions(width, height)
	opts.Strips = c.Strips.Count
	opts.EntranceDuration = time.Duration(c.Timing.Entrance)
	opts.SettleDuration = time.Duration(c.Timing.Settle)
	opts.ChaseDuration = time.Duration(c.Timing.Chase)
	opts.VelocityThreshold = c.Gesture.VelocityThreshold
	opts.MovedThreshold = c.Gesture.MovedThreshold
	return opts
}

// Capturer returns the configured content source rendered at w x h
func (c *Config) Capturer(w, h int) capture.Capturer {
	if c.Capture.Source == SourceFile {
		return capture.FileCapturer{Path: c.Capture.Path}
	}
	card := capture.DefaultCard(w, h)
	card.Title = c.Capture.Title
	card.Subtitle = c.Capture.Subtitle
	return card
}

// AudioSettings applies the file values onto base
// Either side can mute; an environment volume override wins over the file
func (c *Config) AudioSettings(base *audio.AudioConfig) *audio.AudioConfig {
	if base == nil {
		base = audio.DefaultAudioConfig()
	}
	out := *base
	out.Enabled = base.Enabled && c.Audio.Enabled
	if os.Getenv(audio.EnvMasterVolume) == "" {
		out.MasterVolume = c.Audio.MasterVolume
	}
	return &out
}
