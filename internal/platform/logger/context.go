package logger

import (
	"context"
	"log/slog"
)

// loggerKey is the context key type for the request-scoped logger. An
// unexported struct type guarantees no collision with keys from other
// packages.
type loggerKey struct{}

// WithContext returns a copy of ctx carrying the given logger. Middleware
// attaches a trace-scoped logger this way so that everything downstream
// logs with the same correlation attributes.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the logger from the context, falling back to the
// process-wide default logger when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default. Handlers use this with their component-scoped
// logger so that logs stay attributed even for contexts that bypassed the
// middleware chain (e.g. in tests).
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
