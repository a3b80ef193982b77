// Package config loads settings from an optional TOML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

const fileName = "readtags.toml"

// Config holds the settings read from the config file.
type Config struct {
	LogLevel          string `toml:"log_level"`
	PromptOnSelection bool   `toml:"prompt_on_selection"`
}

// Env holds the settings read from the environment. SelectedFilePaths is set
// by the Nautilus file manager when the program runs as a script.
type Env struct {
	SelectedFilePaths string `envconfig:"NAUTILUS_SCRIPT_SELECTED_FILE_PATHS"`
	LogLevel          string `envconfig:"READTAGS_LOG_LEVEL"`
	ConfigPath        string `envconfig:"READTAGS_CONFIG"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		LogLevel:          "debug",
		PromptOnSelection: true,
	}
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// SelectedPaths splits the newline separated file manager selection, dropping
// empty entries.
func (e Env) SelectedPaths() []string {
	paths := []string{}
	for _, line := range strings.Split(e.SelectedFilePaths, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

// GetConfigPath returns the config file path. READTAGS_CONFIG wins, then
// ./readtags.toml, then ~/.config/readtags/config.toml.
func GetConfigPath(env Env) string {
	if env.ConfigPath != "" {
		return env.ConfigPath
	}

	if _, err := os.Stat(fileName); err == nil {
		return fileName
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fileName
	}

	return filepath.Join(home, ".config", "readtags", "config.toml")
}

// LoadConfig loads configuration from a TOML file. A missing file gives the
// defaults; keys absent from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load resolves the effective configuration: defaults, then the config file,
// then the environment.
func Load(env Env) (Config, error) {
	config, err := LoadConfig(GetConfigPath(env))
	if env.LogLevel != "" {
		config.LogLevel = env.LogLevel
	}
	return config, err
}
