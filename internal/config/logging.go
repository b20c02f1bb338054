package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	Format     string          `yaml:"format" json:"format,omitempty"`         // json, text
	File       string          `yaml:"file" json:"file,omitempty"`             // empty = stderr (the TUI falls back to paperview.log)
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"` // Per-category toggles
}

