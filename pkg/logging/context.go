package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey keeps context values private to this package.
type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

// WithLogger attaches a logger to the context. Passing nil attaches
// the process-wide logger.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or the process-wide
// logger when none is attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx is shorthand for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithField returns a context whose logger carries one more field.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := addField(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithFields returns a context whose logger carries all given fields.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	lc := FromContext(ctx).With()
	for k, v := range fields {
		lc = addField(lc, k, v)
	}

	logger := lc.Logger()
	return WithLogger(ctx, &logger)
}

// WithRequestID stores a request id and stamps it on the context logger.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, id)
	return WithField(ctx, "request_id", id)
}

// RequestID returns the request id stored by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithTarget stamps the target name being resolved.
func WithTarget(ctx context.Context, name string) context.Context {
	return WithField(ctx, "target", name)
}

// WithCatalog stamps the survey catalog being processed.
func WithCatalog(ctx context.Context, catalog string) context.Context {
	return WithField(ctx, "catalog", catalog)
}

// WithSourceID stamps the Gaia DR2 source identifier.
func WithSourceID(ctx context.Context, id int64) context.Context {
	return WithField(ctx, "source_id", id)
}

// WithOperation stamps the operation in progress.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}

// WithError stamps a non-nil error on the context logger.
func WithError(ctx context.Context, err error) context.Context {
	if err == nil {
		return ctx
	}
	return WithField(ctx, "error", err)
}
