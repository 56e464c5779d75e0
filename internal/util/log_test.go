package util

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSlogLevel(t *testing.T) {

	assert.Equal(t, slog.LevelDebug, SlogLevel(zap.DebugLevel))
	assert.Equal(t, slog.LevelWarn, SlogLevel(zap.WarnLevel))
	assert.Equal(t, slog.LevelError, SlogLevel(zap.FatalLevel))
}

func TestSlogLoggerFiltersLevel(t *testing.T) {

	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, zap.WarnLevel)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("config file missing", "file", "/etc/sparkshift.yaml")
	assert.Contains(t, buf.String(), "config file missing")
}

func TestComponentLogger(t *testing.T) {

	core, logs := observer.New(zapcore.InfoLevel)
	ComponentLogger("devices", zap.New(core)).Info("connected")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "devices", entries[0].ContextMap()["component"])
}
