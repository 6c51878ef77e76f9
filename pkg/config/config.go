// Package config handles run parameters for lintwire: environment
// variables set by the CI workflow and the optional .lintwire.yml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional file configuration from .lintwire.yml.
// Command-line flags override it; built-in defaults fill the rest.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Ignore  []string      `yaml:"ignore"`
	Report  ReportConfig  `yaml:"report"`
	Archive ArchiveConfig `yaml:"archive"`
	History HistoryConfig `yaml:"history"`
}

// EngineConfig controls how the lint engine is invoked.
type EngineConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Timeout Duration `yaml:"timeout"`
}

// ReportConfig controls report extras.
type ReportConfig struct {
	Annotations bool `yaml:"annotations"`
}

// ArchiveConfig controls report archiving.
type ArchiveConfig struct {
	Destination string `yaml:"destination"` // /dir, s3://bucket/prefix, or gs://bucket/prefix
}

// HistoryConfig controls run history recording.
type HistoryConfig struct {
	DSN string `yaml:"dsn"` // postgres DSN; empty disables history
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "90s" or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Command: "theme-check",
			Args:    []string{"--output", "json"},
			Timeout: Duration(5 * time.Minute),
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .lintwire.yml in the given directory and its
// parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".lintwire.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
