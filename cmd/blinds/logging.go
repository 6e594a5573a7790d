package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/blinds/config"
)

const (
	logDir      = "logs"
	logFileName = "blinds.log"
	maxLogSize  = 10 * 1024 * 1024
)

// newLogger creates a timestamped logger writing to w
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logLevel maps the configured level, unknown names fall back to info
func logLevel(cfg *config.Config) log.Level {
	lvl, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// setupLogging routes logs for the interactive session
// The terminal owns stdout, so without debug everything goes to io.Discard; with debug
// logs at level go to path (logs/blinds.log when empty), rotating a file that grew past maxLogSize
func setupLogging(debug bool, path string, level log.Level) (*log.Logger, *os.File) {
	if !debug {
		logger := newLogger(io.Discard, level)
		log.SetDefault(logger)
		return logger, nil
	}

	if path == "" {
		path = filepath.Join(logDir, logFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return setupLogging(false, "", level)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s.%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return setupLogging(false, "", level)
	}

	logger := newLogger(f, level)
	log.SetDefault(logger)
	return logger, f
}
