package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/quranpulse/quranpulse/internal/config"
)

// setupLog opens the log file. The TUI owns the terminal, so nothing is
// logged to stderr.
func setupLog(cfg *config.Config) (*log.Logger, func() error, error) {
	lc, err := cfg.GetLogConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log path: %w", err)
	}
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "quranpulse",
	})
	return logger, f.Close, nil
}
