package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsole(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buffer})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("resetting results directory", "path", "results")

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), "level=WARN")
	assert.Contains(t, buffer.String(), "path=results")
}

func TestNewJSON(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buffer})
	require.NoError(t, err)

	logger.Debug("discovered", "count", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &record))
	assert.Equal(t, "discovered", record["msg"])
	assert.Equal(t, float64(3), record["count"])
}

func TestNewUnsupportedFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	assert.ErrorContains(t, err, "unsupported value")
}
