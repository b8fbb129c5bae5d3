// Package config resolves where the fragments document lives and how the
// binaries log.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvDataPath overrides the document location
	EnvDataPath = "FRAGMENTS_DB"
	// EnvConfigFile overrides the config file location
	EnvConfigFile = "FRAGMENTS_CONFIG"
	// EnvEnvironment selects development logging when set to "development"
	EnvEnvironment = "FRAGMENTS_ENV"

	appDir         = "fragments"
	dataFileName   = "fragments.json"
	configFileName = "config.yaml"
	logFileName    = "fragments.log"

	// fallbackDir is used when the OS reports no config directory
	fallbackDir = "~/.fragments"
)

// Config holds the optional settings read from config.yaml
type Config struct {
	DataPath       string `yaml:"data_path"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
	StrictUpdates  bool   `yaml:"strict_updates"`
	HighlightStyle string `yaml:"highlight_style"`

	lookup func(string) string
}

// Dir returns the per-user application directory
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return fallbackDir
	}
	return filepath.Join(base, appDir)
}

// DefaultDataPath returns <UserConfigDir>/fragments/fragments.json
func DefaultDataPath() string {
	return filepath.Join(Dir(), dataFileName)
}

// FilePath returns the config file location, honoring FRAGMENTS_CONFIG
func FilePath() string {
	if env := os.Getenv(EnvConfigFile); env != "" {
		return env
	}
	return filepath.Join(Dir(), configFileName)
}

// Load reads the config file from FilePath. A missing file yields an empty
// config.
func Load() (*Config, error) {
	return LoadFile(FilePath())
}

// LoadFile reads the config at path. A missing file yields an empty config.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{lookup: os.Getenv}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DataFile returns the document path. Precedence: override (a --db flag),
// FRAGMENTS_DB, data_path from the config file, the default location.
func (c *Config) DataFile(override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	if env := strings.TrimSpace(c.getenv(EnvDataPath)); env != "" {
		return env
	}
	if c.DataPath != "" {
		return c.DataPath
	}
	return DefaultDataPath()
}

// LogPath returns the configured log file, or a file next to the document
// when none is configured
func (c *Config) LogPath(dataFile string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dataFile), logFileName)
}

// Development reports whether development logging is requested
func (c *Config) Development() bool {
	return strings.EqualFold(c.getenv(EnvEnvironment), "development") ||
		strings.EqualFold(c.LogLevel, "debug")
}

func (c *Config) getenv(key string) string {
	if c.lookup == nil {
		return os.Getenv(key)
	}
	return c.lookup(key)
}
