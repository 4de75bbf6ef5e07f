// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package logger builds the diagnostic logger used by apisheet commands.
package logger

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger writing to out at the given level. Unknown
// levels fall back to info. If pretty is true, output is formatted for
// humans instead of JSON lines.
func New(level string, pretty bool, out io.Writer) zerolog.Logger {
	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil || zLevel == zerolog.NoLevel {
		zLevel = zerolog.InfoLevel
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(zLevel)
}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}
	return *zerolog.Ctx(ctx)
}
