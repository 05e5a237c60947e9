// Package logging provides the structured, context-aware logger shared by the
// services, the HTTP layer and the CLI.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger takes key-value pairs after the message:
//
//	logger.Info(ctx, "account provisioned", "account_id", account.ID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New builds a slog-backed Logger writing to output. format is "json" or
// "text"; unknown levels fall back to info.
func New(output io.Writer, level string, format string) Logger {
	options := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(output, options)
	} else {
		handler = slog.NewTextHandler(output, options)
	}
	return NewSlogLogger(slog.New(handler))
}

// Discard returns a Logger that drops every record. Useful in tests.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
