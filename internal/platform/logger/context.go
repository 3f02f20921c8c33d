package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys defined by this package.
// Using a dedicated type prevents collisions with keys from other packages.
type contextKey string

// loggerKey is the context key under which the request-scoped logger is stored.
const loggerKey contextKey = "logger"

// WithLogger returns a new context carrying the given logger. Handlers and
// middleware use this to propagate a logger enriched with request metadata
// (such as a trace ID) down to services and stores.
//
// Panics if log is nil: storing a nil logger would turn every downstream
// FromContext call into a latent nil dereference.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		panic("logger.WithLogger: nil logger")
	}
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger stored in the context, falling back to
// slog.Default() when the context carries none. The returned logger is never
// nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger stored in the context, falling
// back to the provided default when the context carries none. Components that
// hold their own base logger use this so request-scoped metadata wins when
// present but logging still works for calls made outside a request.
func FromContextOrDefault(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}
