package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service, level string) *Logger {
	return NewWithWriter(os.Stdout, service, level)
}

func NewWithWriter(w io.Writer, service, level string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Discard is a logger that drops everything, for tests.
func Discard() *Logger {
	return NewWithWriter(io.Discard, "test", "error")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func (l *Logger) base(action, requestID string) []slog.Attr {
	return []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
}

func (l *Logger) Info(action, requestID, message string, attrs ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelInfo, message, append(l.base(action, requestID), attrs...)...)
}

func (l *Logger) Debug(action, requestID, message string, attrs ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelDebug, message, append(l.base(action, requestID), attrs...)...)
}

func (l *Logger) Warn(action, requestID, message string, attrs ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelWarn, message, append(l.base(action, requestID), attrs...)...)
}

func (l *Logger) Error(action, requestID, message string, err error, attrs ...slog.Attr) {
	all := append(l.base(action, requestID), attrs...)
	if err != nil {
		all = append(all, slog.Group("error", slog.String("msg", err.Error())))
	}
	l.handler.LogAttrs(context.TODO(), slog.LevelError, message, all...)
}
