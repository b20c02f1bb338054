package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds all paperview configuration.
type Config struct {
	// Where the records come from
	Source SourceConfig `yaml:"source"`

	// Table, filters and interaction
	Viewer ViewerConfig `yaml:"viewer"`

	// Page publisher
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig configures the record source.
type SourceConfig struct {
	Location  string `yaml:"location"`  // file path or http(s) URL
	Delimiter string `yaml:"delimiter"` // single character, default ","
	Timeout   string `yaml:"timeout"`   // remote fetch timeout
}

// ServerConfig configures the page publisher.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Location:  "paperlist.csv",
			Delimiter: ",",
			Timeout:   "30s",
		},

		Viewer: DefaultViewerConfig(),

		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: "2s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Defaults still honor the environment
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if src := os.Getenv("PAPERVIEW_SOURCE"); src != "" {
		c.Source.Location = src
	}
	if dir := os.Getenv("PAPERVIEW_DOCUMENTS"); dir != "" {
		c.Viewer.DocumentsDir = dir
	}
	if addr := os.Getenv("PAPERVIEW_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("PAPERVIEW_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetSourceTimeout returns the remote fetch timeout as a duration.
func (c *Config) GetSourceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetShutdownTimeout returns the publisher shutdown grace period.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// GetSearchDebounce returns the idle delay before a search is applied.
func (c *Config) GetSearchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Viewer.SearchDebounce)
	if err != nil || d < 0 {
		return DefaultSearchDebounce
	}
	return d
}

// DelimiterRune returns the source field delimiter.
func (c *Config) DelimiterRune() rune {
	r, size := utf8.DecodeRuneInString(c.Source.Delimiter)
	if size == 0 || r == utf8.RuneError {
		return ','
	}
	return r
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Source.Location == "" {
		return fmt.Errorf("source location not configured (set source.location or PAPERVIEW_SOURCE)")
	}

	if c.Source.Delimiter != "" {
		if utf8.RuneCountInString(c.Source.Delimiter) != 1 {
			return fmt.Errorf("invalid delimiter %q: must be a single character", c.Source.Delimiter)
		}
		switch c.Source.Delimiter {
		case "\"", "\r", "\n":
			return fmt.Errorf("invalid delimiter %q", c.Source.Delimiter)
		}
	}

	for name, value := range map[string]string{
		"source.timeout":          c.Source.Timeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"viewer.search_debounce":  c.Viewer.SearchDebounce,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, value, err)
		}
	}

	return c.Viewer.Validate()
}
