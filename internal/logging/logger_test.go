package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "info", Output: &bytes.Buffer{}})
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))

	debug := NewLogger(Config{Level: "DEBUG", Output: &bytes.Buffer{}})
	assert.True(t, debug.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLoggerJSONCarriesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "json", Service: "fingerscore", Version: "v1", Output: &buf})
	Info(logger, "hello", FieldSport, "TENNIS")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "fingerscore", line[FieldService])
	assert.Equal(t, "v1", line[FieldVersion])
	assert.Equal(t, "TENNIS", line[FieldSport])
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Info(nil, "x")
		Warn(nil, "x")
		Error(nil, "x", errors.New("boom"))
	})
}

func TestErrorAppendsErr(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "json", Output: &buf})
	Error(logger, "failed", errors.New("boom"))
	assert.Contains(t, buf.String(), `"error":"boom"`)
}
