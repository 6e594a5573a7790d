package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/blinds/config"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logger, logFile := setupLogging(false, "", log.InfoLevel)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
	if logger == nil {
		t.Fatal("Expected a logger even when disabled")
	}
	if log.Default() != logger {
		t.Error("Expected the discard logger to become the default")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nested", logFileName)

	logger, logFile := setupLogging(true, logPath, log.DebugLevel)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	if _, err := os.Stat(filepath.Dir(logPath)); os.IsNotExist(err) {
		t.Error("Expected log directory to be created")
	}

	logger.Debug("Test log message", "phase", "open")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)

	largeFile, err := os.Create(logPath)
	if err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}
	data := make([]byte, maxLogSize+1)
	if _, err := largeFile.Write(data); err != nil {
		t.Fatalf("Failed to write to log file: %v", err)
	}
	largeFile.Close()

	_, logFile := setupLogging(true, logPath, log.DebugLevel)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	_, logFile := setupLogging(true, filepath.Join(t.TempDir(), logFileName), log.DebugLevel)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	if logFile == os.Stdout {
		t.Error("Log output should not be stdout")
	}
	if logFile == os.Stderr {
		t.Error("Log output should not be stderr")
	}
}

func TestSetupLogging_HonorsLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), logFileName)

	logger, logFile := setupLogging(true, logPath, log.WarnLevel)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	logger.Info("Dropped below warn")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %q", data)
	}

	logger.Warn("Kept at warn")
	data, err = os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Kept at warn") {
		t.Errorf("Expected warn entry in log file, got %q", data)
	}
}

func TestLogLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := logLevel(cfg); got != log.InfoLevel {
		t.Errorf("Expected info by default, got %v", got)
	}

	cfg.Log.Level = "warn"
	cfg.Log.Debug = true
	if got := logLevel(cfg); got != log.WarnLevel {
		t.Errorf("Expected configured warn level with file logging on, got %v", got)
	}

	cfg.Log.Level = "bogus"
	if got := logLevel(cfg); got != log.InfoLevel {
		t.Errorf("Expected info fallback, got %v", got)
	}
}
