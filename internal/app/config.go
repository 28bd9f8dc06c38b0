package app

import (
	"chirp/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Silent suppresses all log output
	Silent bool

	// Custom configuration directory (optional)
	// When set, config.yaml and the default tokens file live there.
	ConfigPath string

	// Environment configuration, populated during bootstrap
	ChirpConfig *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(debug, silent bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Silent:     silent,
		ConfigPath: configPath,
	}
}
