// Package config handles configuration loading and validation for sprout.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/sprout/internal/core/styles"
)

// Backend driver names.
const (
	DriverMemory   = "memory"
	DriverJSONFile = "jsonfile"
	DriverSQLite   = "sqlite"
	DriverSheets   = "sheets"
)

// Config holds the application configuration.
type Config struct {
	// Remote is the base URL of a sprout server. When set, the client
	// syncs against it and the local backend settings are ignored.
	Remote  string        `yaml:"remote"`
	Backend BackendConfig `yaml:"backend"`
	Sheets  SheetsConfig  `yaml:"sheets"`
	Server  ServerConfig  `yaml:"server"`
	Theme   string        `yaml:"theme"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// BackendConfig selects and locates the local row store.
type BackendConfig struct {
	Driver string `yaml:"driver"`
	// Path overrides the default store location under the data dir.
	Path string `yaml:"path"`
}

// SheetsConfig locates the Google Sheets backend material.
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsPath string `yaml:"credentials_path"`
	TokenPath       string `yaml:"token_path"`
}

// ServerConfig holds `sprout serve` settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			Driver: DriverJSONFile,
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8974",
		},
		Theme: styles.DefaultTheme,
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Backend.Driver == "" {
		c.Backend.Driver = defaults.Backend.Driver
	}
	if c.Server.Listen == "" {
		c.Server.Listen = defaults.Server.Listen
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Sheets.CredentialsPath == "" {
		c.Sheets.CredentialsPath = filepath.Join(c.DataDir, "credentials.json")
	}
	if c.Sheets.TokenPath == "" {
		c.Sheets.TokenPath = filepath.Join(c.DataDir, "token.json")
	}
}

// StorePath returns the local store location for the configured driver.
func (c *Config) StorePath() string {
	if c.Backend.Path != "" {
		return c.Backend.Path
	}
	switch c.Backend.Driver {
	case DriverSQLite:
		return filepath.Join(c.DataDir, "sprout.db")
	default:
		return filepath.Join(c.DataDir, "data.json")
	}
}

// TaskOrderFile returns the path to the client-side task order file.
func (c *Config) TaskOrderFile() string {
	return filepath.Join(c.DataDir, "taskorder.json")
}
