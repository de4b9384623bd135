// Package logging is the process-wide slog front: a compact console
// handler by default, JSON on request, with request-ID plumbing for HTTP
// handlers.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// LevelTrace sits below slog's debug for per-pointer-event spam.
const LevelTrace = slog.LevelDebug - 4

type contextKey string

const requestIDKey contextKey = "requestID"

var logger *slog.Logger

func init() {
	logger = slog.New(NewCompactHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel switches to a compact console handler at the given level.
func SetLevel(level slog.Level) {
	logger = slog.New(NewCompactHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetJSONOutput switches to JSON output at the given level.
func SetJSONOutput(level slog.Level) {
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// WithRequestID stores a request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID from the context, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := GetRequestID(ctx); id != "" {
		return append([]any{"requestID", id}, args...)
	}
	return args
}

// Trace logs below debug; used for per-pointer-event noise.
func Trace(msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// TraceContext logs at trace level with the context's request ID.
func TraceContext(ctx context.Context, msg string, args ...any) {
	logger.Log(ctx, LevelTrace, msg, withRequestID(ctx, args)...)
}

func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

func DebugContext(ctx context.Context, msg string, args ...any) {
	logger.DebugContext(ctx, msg, withRequestID(ctx, args)...)
}

func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	logger.InfoContext(ctx, msg, withRequestID(ctx, args)...)
}

func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	logger.WarnContext(ctx, msg, withRequestID(ctx, args)...)
}

func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	logger.ErrorContext(ctx, msg, withRequestID(ctx, args)...)
}

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}
