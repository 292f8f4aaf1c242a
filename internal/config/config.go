// Package config loads mcsim settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Convergence log backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ValidBackends lists the accepted log.backend values.
var ValidBackends = []string{BackendCSV, BackendSQLite, BackendMemory}

// Defaults.
const (
	DefaultLogPath    = "static/pi_estimates.csv"
	DefaultSQLitePath = "static/pi_estimates.db"
	DefaultPoints     = 10000
)

// Config holds all mcsim settings.
type Config struct {
	Log LogConfig `yaml:"log"`

	// Seed fixes the random stream for reproducible runs.
	// Nil means each estimation draws a fresh seed.
	Seed *uint64 `yaml:"seed,omitempty"`

	// DefaultPoints is used when a command is given no --points flag.
	DefaultPoints int `yaml:"default_points,omitempty"`
}

// LogConfig selects the convergence log backend.
type LogConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:           LogConfig{Backend: BackendCSV, Path: DefaultLogPath},
		DefaultPoints: DefaultPoints,
	}
}

// Load reads a YAML config file and overlays it on Default().
// Unknown fields are rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	cfg.Log.Path = ""
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns Default() when path is empty
// or the file does not exist.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// fillDefaults sets zero-valued fields to their defaults.
func (c *Config) fillDefaults() {
	if c.Log.Backend == "" {
		c.Log.Backend = BackendCSV
	}
	if c.Log.Path == "" {
		c.Log.Path = DefaultPathFor(c.Log.Backend)
	}
	if c.DefaultPoints == 0 {
		c.DefaultPoints = DefaultPoints
	}
}

// DefaultPathFor returns the default log location for a backend.
func DefaultPathFor(backend string) string {
	if backend == BackendSQLite {
		return DefaultSQLitePath
	}
	return DefaultLogPath
}

// Validate checks field values.
func (c Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Log.Backend) {
		return fmt.Errorf("log.backend %q: must be one of %v", c.Log.Backend, ValidBackends)
	}
	if c.DefaultPoints <= 0 {
		return fmt.Errorf("default_points must be positive, got %d", c.DefaultPoints)
	}
	return nil
}
