package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// timezone loading, log level parsing, and file accessibility. The configPath
// argument specifies the config file location to validate (empty string skips
// config file check). This calls Validate() first for basic structural
// validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("timezone", c.Timezone, timezoneLoads),
		criterio.Run("log_level", c.LogLevel, logLevelParses),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Identity.WorkspaceID == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Identity",
			Item:     "workspace_id",
			Message:  "no default workspace; pass --workspace or set PROMA_WORKSPACE_ID",
		})
	}
	if c.Identity.UserID == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Identity",
			Item:     "user_id",
			Message:  "no default user; pass --user-id or set PROMA_USER_ID",
		})
	}
	if c.Identity.UserID != "" && c.Identity.UserName == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Identity",
			Item:     "user_name",
			Message:  "unresolved assignees fall back to an empty name",
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func timezoneLoads(name string) error {
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown timezone %q", name)
	}
	return nil
}

func logLevelParses(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
