package middleware

import (
	"context"
	"log/slog"
)

// SlogAdapter adapts a *slog.Logger to CORSLogger.
type SlogAdapter struct {
	Logger *slog.Logger
}

func (a *SlogAdapter) log(level slog.Level, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	a.Logger.Log(context.Background(), level, msg, args...)
}

func (a *SlogAdapter) Info(msg string, fields map[string]interface{}) {
	a.log(slog.LevelInfo, msg, fields)
}

func (a *SlogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.log(slog.LevelWarn, msg, fields)
}

func (a *SlogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.log(slog.LevelDebug, msg, fields)
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (l *NoOpLogger) Info(msg string, fields map[string]interface{}) {}

func (l *NoOpLogger) Warn(msg string, fields map[string]interface{}) {}

func (l *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}
