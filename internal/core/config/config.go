// Package config handles configuration loading and validation for proma.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/proma/internal/core/clock"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Timezone string         `yaml:"timezone"`
	Identity IdentityConfig `yaml:"identity"`
	Database DatabaseConfig `yaml:"database"`
	Report   ReportConfig   `yaml:"report"`
	LogLevel string         `yaml:"log_level"`
	LogFile  string         `yaml:"log_file"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// IdentityConfig is the default (workspace, user) scope for commands that do
// not pass one explicitly.
type IdentityConfig struct {
	WorkspaceID string `yaml:"workspace_id"`
	UserID      string `yaml:"user_id"`
	UserName    string `yaml:"user_name"`
}

// DatabaseConfig tunes the SQLite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	RecentLimit int `yaml:"recent_limit"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timezone: clock.DefaultTimezone,
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
		},
		Report: ReportConfig{
			RecentLimit: 10,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	// Start from zero values so applyDefaults can tell unset keys apart and
	// derive dependent defaults from the keys that were set.
	cfg := Config{DataDir: dataDir}

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
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = defaults.Timezone
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = min(defaults.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Report.RecentLimit == 0 {
		c.Report.RecentLimit = defaults.Report.RecentLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns must be between 0 and max_open_conns")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	if c.Report.RecentLimit < 1 {
		return fmt.Errorf("report.recent_limit must be at least 1")
	}

	return nil
}

// DBDir is the directory holding the SQLite database.
func (c *Config) DBDir() string {
	return c.DataDir
}

// DefaultLogFile is used when no log file is configured and logs should not
// go to stderr.
func (c *Config) DefaultLogFile() string {
	return filepath.Join(c.DataDir, "logs", "proma.log")
}
