package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	loggerKey    ctxKey = "logger"
)

// WithLogger stores a specific logger in the context. FromCtx prefers it
// over the global one, which lets callers (and tests) observe what a code
// path logs.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns the context's logger (or the global one) with request_id
// automatically added.
func FromCtx(ctx context.Context) *zap.Logger {
	base := L()
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		base = l
	}

	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		return base
	}
	return base.With(zap.String("request_id", reqID))
}
