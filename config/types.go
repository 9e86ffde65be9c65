package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Proxy         ProxyConfig         `mapstructure:"proxy"`
	Server        ServerConfig        `mapstructure:"server"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// APIConfig holds counselor backend connection details
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProxyConfig holds the local relay used by the mock fallback proxy
type ProxyConfig struct {
	RelayURL string        `mapstructure:"relay_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ServerConfig contains relay server settings
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// NotificationsConfig contains notification display settings
type NotificationsConfig struct {
	DefaultDuration time.Duration `mapstructure:"default_duration"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
