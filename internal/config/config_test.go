package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdxmph/tasks-tui/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvLogLevel, EnvLogPath, EnvDefaultFilter, EnvDemo} {
		if v, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "high", cfg.UI.DefaultPriority)
	assert.Equal(t, "all", cfg.UI.DefaultFilter)
	assert.False(t, cfg.UI.Demo)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, task.PriorityHigh, cfg.DefaultPriority())
	assert.Equal(t, task.FilterAll, cfg.DefaultFilter())
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[ui]
default_priority = "low"
default_filter = "medium"
demo = true

[log]
path = "~/tasks.log"
level = "debug"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	homeDir, _ := os.UserHomeDir()
	assert.Equal(t, task.PriorityLow, cfg.DefaultPriority())
	assert.Equal(t, task.PriorityFilter(task.PriorityMedium), cfg.DefaultFilter())
	assert.True(t, cfg.UI.Demo)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(homeDir, "tasks.log"), cfg.Log.Path)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\nlevel = \"warn\"\n")

	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogPath, "")
	t.Setenv(EnvDefaultFilter, "low")
	t.Setenv(EnvDemo, "true")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Empty(t, cfg.Log.Path)
	assert.Equal(t, "low", cfg.UI.DefaultFilter)
	assert.True(t, cfg.UI.Demo)
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"priority", "[ui]\ndefault_priority = \"urgent\"\n", "ui.default_priority"},
		{"filter", "[ui]\ndefault_filter = \"someday\"\n", "ui.default_filter"},
		{"level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"syntax", "[ui\n", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			writeFile(t, path, tt.content)

			_, err := LoadFrom(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromRejectsBadDemoEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDemo, "sometimes")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDemo)
}

func TestSaveToRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.UI.DefaultPriority = "medium"
	cfg.UI.Demo = true
	cfg.Log.Path = filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath, EnvDefaultFilter+"=high\n")
	t.Cleanup(func() { os.Unsetenv(EnvDefaultFilter) })

	require.NoError(t, LoadDotEnv(envPath))
	assert.Equal(t, "high", os.Getenv(EnvDefaultFilter))
}
