// Package config loads the locations of codescope's persisted state: the
// pattern catalog, the observation archive, and logging options. Values come
// from an optional YAML file with CODESCOPE_* environment overrides on top.
package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const envPrefix = "codescope"

// Config supplies the catalog, archive, and logging settings consumed by the
// command layer. Validation happens here; the core packages trust the paths
// they are handed.
type Config struct {
	// PatternsPath is the JSON pattern catalog file.
	PatternsPath string `yaml:"patterns_path" envconfig:"PATTERNS_PATH"`
	// ObservationsDir is the archive directory, created lazily.
	ObservationsDir string `yaml:"observations_dir" envconfig:"OBSERVATIONS_DIR"`
	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

// Default returns the configuration used when no file is given: state lives
// under ~/.codescope.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	root := filepath.Join(home, ".codescope")
	return Config{
		PatternsPath:    filepath.Join(root, "patterns.json"),
		ObservationsDir: filepath.Join(root, "observations"),
		LogLevel:        "info",
	}
}

// Load builds the effective configuration. An empty path means defaults; a
// given path must exist. Environment variables override either source.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Path: path}
		}
		if err != nil {
			return nil, &InvalidFormatError{Path: path, Err: err}
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &InvalidFormatError{Path: path, Err: err}
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, &InvalidFormatError{Path: "environment", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and value shapes.
func (c *Config) Validate() error {
	if c.PatternsPath == "" {
		return &MissingFieldError{Field: "patterns_path"}
	}
	if c.ObservationsDir == "" {
		return &MissingFieldError{Field: "observations_dir"}
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return &InvalidValueError{Field: "log_level", Reason: err.Error()}
		}
	}
	return nil
}

// Level returns the parsed zerolog level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	if c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
