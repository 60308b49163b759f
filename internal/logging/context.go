package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey is the private type for context keys used by this package.
type ctxKey struct{}

//nolint:gochecknoglobals // Package-level context key is idiomatic
var loggerCtxKey = ctxKey{}

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// FromContext returns the logger carried by ctx, falling back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
