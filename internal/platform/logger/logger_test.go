package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licensing/internal/platform/config"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, config.Log{Level: slog.LevelWarn, Format: "json"})

	log.Info("dropped")
	log.Warn("kept", "license_id", 9)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "licensing", line["service"])
	assert.EqualValues(t, 9, line["license_id"])
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, config.Log{Level: slog.LevelInfo, Format: "text"}).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
