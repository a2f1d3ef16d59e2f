package application

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// Config holds the shell and ambient settings of the vote counter.
// Nothing here changes core pipeline semantics; the file format and the
// tally rules are fixed.
type Config struct {
	// Logging controls diagnostic output.
	Logging LoggingConfig `yaml:"logging"`
	// Metrics controls the optional Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
	// Files controls vote file discovery and reading limits.
	Files FilesConfig `yaml:"files"`
	// Cache toggles the in-memory result cache.
	Cache CacheConfig `yaml:"cache"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is the minimum level emitted: debug, info, warn, or error.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// SlogLevel maps the configured level onto slog's leveling.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MetricsConfig controls the Prometheus scrape endpoint exposed by the
// interactive shell.
type MetricsConfig struct {
	// Enabled turns metric collection and the /metrics endpoint on.
	Enabled bool `yaml:"enabled"`
	// Addr is the listen address for the endpoint, host:port form.
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// FilesConfig controls vote file discovery and reading.
type FilesConfig struct {
	// Extension filters the interactive file listing, e.g. ".txt".
	Extension string `yaml:"extension" validate:"omitempty,startswith=."`
	// MaxLineBytes caps the length of a single vote file line.
	// Zero applies the reader default.
	MaxLineBytes int `yaml:"max_line_bytes" validate:"omitempty,min=1"`
}

// CacheConfig controls the in-memory result cache.
type CacheConfig struct {
	// Enabled turns content-hash result caching on.
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the settings used when no config file is given:
// info logging, metrics off, ".txt" discovery, cache off.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: false, Addr: "localhost:9090"},
		Files:   FilesConfig{Extension: ".txt"},
		Cache:   CacheConfig{Enabled: false},
	}
}

// LoadConfig reads a YAML config file, overlaying it onto the defaults,
// and validates the merged result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config bytes over the defaults and validates
// the merged result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
