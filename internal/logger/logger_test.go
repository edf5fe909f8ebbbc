package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToDiscard(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, log)

	// Must not panic with no writer configured.
	log.Info("hello")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")

	assert.Contains(t, buf.String(), "kept")
	assert.NotContains(t, buf.String(), "dropped")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.WithFields(map[string]any{"component": "pill"}).Info("snap")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pill", entry["component"])
	assert.Equal(t, "snap", entry["message"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger
	log.Debug("noop")
	log.Info("noop")
	log.Warn("noop")
	log.Error(nil, "noop")
	assert.Nil(t, log.WithFields(map[string]any{"k": "v"}))
}
