package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// setupLogger installs the process-wide slog logger. With no path, logs are
// discarded: stderr belongs to the alt screen while the TUI runs.
func setupLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return logger, io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	return logger, f, nil
}
