package log

import (
	"io"
	"log/slog"
)

// NewLogger creates a structured logger writing to w.
// When verbose is true the level drops to Debug; otherwise only
// warnings and errors are emitted, keeping normal runs quiet enough
// that the catalog output is the interesting artifact.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Discard returns a logger that drops everything. Used in tests and as
// a safe default when no logger is injected.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
