package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const loggerKey contextKey = iota

// WithLogger stores logger in ctx. A nil logger stores the default logger.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithParser tags the context logger with the page parser name.
func WithParser(ctx context.Context, name string) context.Context {
	logger := FromContext(ctx).With().Str("parser", name).Logger()
	return WithLogger(ctx, &logger)
}

// WithURL tags the context logger with the page URL being fetched.
func WithURL(ctx context.Context, url string) context.Context {
	logger := FromContext(ctx).With().Str("url", url).Logger()
	return WithLogger(ctx, &logger)
}
