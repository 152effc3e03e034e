// Package logging configures the process-wide zerolog logger and carries
// per-invocation loggers through context.Context.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing human-readable console output to out.
// level is parsed into a zerolog level and defaults to InfoLevel on
// parse error.
func New(level string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}

// NewDefault creates an info-level logger writing to stderr.
func NewDefault() zerolog.Logger {
	return New(zerolog.LevelInfoValue, os.Stderr)
}

// WithContext returns a context carrying the given logger.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was attached. Callers can always log through the result.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}
