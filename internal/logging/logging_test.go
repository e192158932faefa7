package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasks.log")

	logger, closer, err := Open(path, "debug")
	require.NoError(t, err)

	logger.Debug("task added", "id", "T1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "task added")
	assert.Contains(t, string(data), "id=T1")
}

func TestOpenRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.log")

	logger, closer, err := Open(path, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	logger, closer, err := Open("", "info")
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closer.Close())
}

func TestOpenRejectsUnknownLevel(t *testing.T) {
	_, _, err := Open("", "chatty")
	assert.Error(t, err)
}

func TestNewUsesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, log.InfoLevel).Info("filter changed", "priority", "high")
	assert.Contains(t, buf.String(), "priority=high")
}
