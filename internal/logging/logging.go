// Package logging provides the structured logger used by the core pipeline.
// The spec loader (specloader.NewLoader) accepts an optional *slog.Logger and
// falls back to a discard logger, and the other core packages do not log, so
// embedding this module in another program never forces log output onto
// that program's streams.
package logging

import (
	"io"
	"log/slog"
)

// Discard returns a logger that drops everything, used as the default when
// a caller does not supply one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewStderr returns a logger writing leveled, structured lines to stderr,
// used by the CLI surface (C13) unless the caller passes their own.
func NewStderr(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Or returns logger if non-nil, otherwise a discard logger. Components call
// this once at construction so the rest of their code can assume a non-nil
// logger.
func Or(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return Discard()
}
