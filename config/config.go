package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. An explicit path must exist;
// otherwise the standard locations are searched and a missing file falls
// back to the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".college-counselor"))
		}

		// Check /etc
		v.AddConfigPath("/etc/college-counselor/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		// No file anywhere: run on defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Backend defaults
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", 10*time.Second)

	// Relay defaults
	v.SetDefault("proxy.relay_url", "http://localhost:5000")
	v.SetDefault("proxy.timeout", 10*time.Second)

	// Server defaults
	v.SetDefault("server.listen", ":5000")

	// Notification defaults
	v.SetDefault("notifications.default_duration", 5*time.Second)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	if cfg.Proxy.RelayURL == "" {
		return fmt.Errorf("proxy.relay_url is required")
	}

	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}

	if cfg.Notifications.DefaultDuration <= 0 {
		return fmt.Errorf("notifications.default_duration must be positive")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
