package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Production(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	log := Init(Options{Service: "taskflow", Output: &buf})

	log.Debug("hidden")
	slog.Info("goal created", "goal_id", "g1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "goal created", record["msg"])
	assert.Equal(t, "taskflow", record["service"])
	assert.Equal(t, "g1", record["goal_id"])
}

func TestInit_Development(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	Init(Options{Dev: true, Output: &buf})

	slog.Debug("progress recorded", "completed_steps", 3)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "completed_steps=3")
	assert.NotContains(t, buf.String(), "service=")

	Flush()
}
