package util

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSlogLogger builds the colored slog logger used before zap is configured.
func NewSlogLogger(w io.Writer, level zapcore.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      SlogLevel(level),
		TimeFormat: time.DateTime,
	}))
}

func SlogLevel(level zapcore.Level) slog.Level {
	switch level {
	case zap.DebugLevel:
		return slog.LevelDebug
	case zap.InfoLevel:
		return slog.LevelInfo
	case zap.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func ComponentLogger(name string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("component", name))
}
