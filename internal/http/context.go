package http

import (
	"context"
	"log/slog"

	"github.com/example/session-planner/internal/logging"
)

type contextKey string

const (
	typeIDContextKey    contextKey = "session_type_id"
	sessionIDContextKey contextKey = "session_id"
	windowIDContextKey  contextKey = "window_id"
)

// ContextWithTypeID injects the session type identifier resolved from the request path.
func ContextWithTypeID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, typeIDContextKey, id)
}

// TypeIDFromContext extracts a session type identifier previously associated with the context.
func TypeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(typeIDContextKey).(string)
	return id, ok
}

// ContextWithSessionID injects the session identifier resolved from the request path.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey, id)
}

// SessionIDFromContext extracts a session identifier previously associated with the context.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDContextKey).(string)
	return id, ok
}

// ContextWithWindowID injects the availability window identifier resolved from the request path.
func ContextWithWindowID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, windowIDContextKey, id)
}

// WindowIDFromContext extracts a window identifier previously associated with the context.
func WindowIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(windowIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts a request scoped logger from the context if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
