package logging

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger adapts slog to the cron.Logger interface.
// cron reports every schedule wake-up through Info, so those go to Debug.
type cronLogger struct {
	logger *slog.Logger
}

// NewCronLogger returns a cron.Logger that writes through logger.
func NewCronLogger(logger *slog.Logger) cron.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &cronLogger{logger: logger.With(slog.String("component", "cron"))}
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{slog.Any("error", SanitizeError(err))}, keysAndValues...)
	l.logger.Error(msg, args...)
}
