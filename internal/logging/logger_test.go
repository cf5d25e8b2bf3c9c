package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Setenv("LT_DEBUG", "")
	buf := &bytes.Buffer{}
	logger := NewLogger(buf, "info", "json")

	logger.Debug("dropped")
	logger.Info("request", "status", 200)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "request", record["msg"])
	assert.Equal(t, float64(200), record["status"])
}

func TestNewLogger_TextRespectsLevel(t *testing.T) {
	t.Setenv("LT_DEBUG", "")
	buf := &bytes.Buffer{}
	logger := NewLogger(buf, "warn", "text")

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNewLogger_DebugEnvOverridesLevel(t *testing.T) {
	t.Setenv("LT_DEBUG", "1")
	buf := &bytes.Buffer{}
	logger := NewLogger(buf, "error", "text")

	logger.Debug("trace")
	assert.Contains(t, buf.String(), "msg=trace")
}

func TestNewLogger_NilWriter(t *testing.T) {
	logger := NewLogger(nil, "info", "text")
	assert.NotPanics(t, func() { logger.Info("nothing") })
}
