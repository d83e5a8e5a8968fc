package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/proma/internal/core/config"
	"github.com/colonyops/proma/internal/core/workitem"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Identity overrides; empty values fall back to the config file.
	WorkspaceID string
	UserID      string
	UserName    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// Identity merges the identity flags over the configured identity.
func (f *Flags) Identity() workitem.Identity {
	var ident workitem.Identity
	if f.Config != nil {
		ident = workitem.Identity{
			WorkspaceID: f.Config.Identity.WorkspaceID,
			UserID:      f.Config.Identity.UserID,
			UserName:    f.Config.Identity.UserName,
		}
	}
	if f.WorkspaceID != "" {
		ident.WorkspaceID = f.WorkspaceID
	}
	if f.UserID != "" {
		ident.UserID = f.UserID
	}
	if f.UserName != "" {
		ident.UserName = f.UserName
	}
	return ident
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "proma", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "proma")
}
