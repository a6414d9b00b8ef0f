package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitServiceFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := Init("info", "json", WithService("converge-worker"), WithVersion("1.2.3"), WithOutput(zapcore.AddSync(&buf)))
	require.NoError(t, err)
	require.Same(t, l, L())

	L().Info("started")
	L().Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "started", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "converge-worker", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Contains(t, entry, "time")
}

func TestInitWithoutServiceHasNoServiceFields(t *testing.T) {
	var buf bytes.Buffer
	_, err := Init("debug", "console", WithOutput(zapcore.AddSync(&buf)))
	require.NoError(t, err)

	L().Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "service")
}

func TestInitRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"level", "verbose", "json"},
		{"format", "info", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Init(tt.level, tt.format)
			require.Error(t, err)
		})
	}
}
