package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.PromptOnSelection)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"warning\"\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.LogLevel)
	assert.True(t, cfg.PromptOnSelection, "absent keys keep their default")
}

func TestLoadNonExistentConfig(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = = 1"), 0o600))

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("NAUTILUS_SCRIPT_SELECTED_FILE_PATHS", "/music/a.flac\n\n/music/b.flac\n")
	t.Setenv("READTAGS_LOG_LEVEL", "error")
	t.Setenv("READTAGS_CONFIG", "/etc/readtags.toml")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"/music/a.flac", "/music/b.flac"}, env.SelectedPaths())
	assert.Equal(t, "error", env.LogLevel)
	assert.Equal(t, "/etc/readtags.toml", GetConfigPath(env))
}

func TestSelectedPaths_Empty(t *testing.T) {
	assert.Empty(t, Env{}.SelectedPaths())
	assert.Empty(t, Env{SelectedFilePaths: "\n\n"}.SelectedPaths())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"info\"\nprompt_on_selection = false\n"), 0o600))

	cfg, err := Load(Env{ConfigPath: path, LogLevel: "error"})
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.False(t, cfg.PromptOnSelection)
}
