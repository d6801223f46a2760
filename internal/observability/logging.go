// Package observability provides structured, context-aware logging.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger is the global structured logger instance used throughout the application.
var Logger *slog.Logger

type contextKey string

const (
	// RequestIDKey carries a per-operation correlation id.
	RequestIDKey contextKey = "request_id"
	// ActingUserKey carries the acting user id resolved by the caller.
	ActingUserKey contextKey = "acting_user_id"
)

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if uid, ok := ctx.Value(ActingUserKey).(uint); ok {
		r.AddAttrs(slog.Any("acting_user_id", uid))
	}
	return h.Handler.Handle(ctx, r)
}

func init() {
	var handler slog.Handler
	level := slog.LevelInfo

	if os.Getenv("APP_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		// Pretty text output for local development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	Logger = slog.New(&ctxHandler{handler})
}

// WithRequestID returns a context tagged with a fresh correlation id.
func WithRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RequestIDKey, uuid.NewString())
}

// WithActingUser returns a context tagged with the acting user id so deep
// layers log it without threading it explicitly.
func WithActingUser(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ActingUserKey, userID)
}
