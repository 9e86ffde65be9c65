package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		API:           APIConfig{BaseURL: "http://localhost:8000", Timeout: 10 * time.Second},
		Proxy:         ProxyConfig{RelayURL: "http://localhost:5000", Timeout: 10 * time.Second},
		Server:        ServerConfig{Listen: ":5000"},
		Notifications: NotificationsConfig{DefaultDuration: 5 * time.Second},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "missing relay URL",
			mutate:  func(c *Config) { c.Proxy.RelayURL = "" },
			wantErr: true,
		},
		{
			name:    "missing listen address",
			mutate:  func(c *Config) { c.Server.Listen = "" },
			wantErr: true,
		},
		{
			name:    "zero notification duration",
			mutate:  func(c *Config) { c.Notifications.DefaultDuration = 0 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray config file is picked up.
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected api.base_url default: %s", cfg.API.BaseURL)
	}
	if cfg.Notifications.DefaultDuration != 5*time.Second {
		t.Errorf("unexpected notification duration default: %s", cfg.Notifications.DefaultDuration)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("unexpected logging level default: %s", cfg.Logging.Level)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
api:
  base_url: https://counselor.example.com
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://counselor.example.com" {
		t.Errorf("unexpected api.base_url: %s", cfg.API.BaseURL)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging format: %s", cfg.Logging.Format)
	}
	// Untouched sections keep their defaults.
	if cfg.Proxy.RelayURL != "http://localhost:5000" {
		t.Errorf("unexpected proxy.relay_url: %s", cfg.Proxy.RelayURL)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for an explicit missing config file")
	}
}
