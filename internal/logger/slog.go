package logger

import (
	"context"
	"log/slog"
	"os"
)

type slogLogger struct {
	logger *slog.Logger
	level  Level
}

// NewSlogLogger builds a Logger on top of log/slog
func NewSlogLogger(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     slogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return &slogLogger{logger: slog.New(handler), level: cfg.Level}
}

func slogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func toArgs(fields []Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
}

func (l *slogLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, toArgs(fields)...) }
func (l *slogLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, toArgs(fields)...) }
func (l *slogLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, toArgs(fields)...) }
func (l *slogLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, toArgs(fields)...) }

func (l *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{logger: l.logger.With(toArgs(fields)...), level: l.level}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (l *slogLogger) Level() Level {
	return l.level
}
