package loggy

import (
	"context"

	"github.com/ryukyi/syntaxscore/internal/ulid"
)

type contextKey string

const loggerKey contextKey = "logger"

// FromContext retrieves the logger from the context
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return globalLogger
	}

	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}

	return globalLogger
}

// WithLogger returns a new context with the logger attached
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// WithRunID tags the context logger with run_id
func WithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger := FromContext(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With("run_id", runID))
	}
	return ctx
}

// NewRunID generates a new run ID using ULID
func NewRunID() string {
	return ulid.RunID()
}
