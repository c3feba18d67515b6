// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultSchemaPath is where the draft schema lives relative to the repo root.
const DefaultSchemaPath = "schemas/application_draft.schema.json"

// Environment variables that override file values.
const (
	EnvLogLevel     = "APPFORM_LOG_LEVEL"
	EnvLogFormat    = "APPFORM_LOG_FORMAT"
	EnvOutputFormat = "APPFORM_OUTPUT_FORMAT"
	EnvSchemaPath   = "APPFORM_SCHEMA_PATH"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	LogLevel     string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"` // Minimum log level
	LogFormat    string `json:"log_format,omitempty" validate:"omitempty,oneof=text json"`            // Log handler format
	OutputFormat string `json:"output_format,omitempty" validate:"omitempty,oneof=text json"`         // Summary/error output format
	SchemaPath   string `json:"schema_path,omitempty"`                                                // Draft JSON Schema path
	Verbose      bool   `json:"verbose,omitempty"`                                                    // Print detailed debug information
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		LogLevel:     "info",
		LogFormat:    "text",
		OutputFormat: "text",
		SchemaPath:   DefaultSchemaPath,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' must be one of [%s], got %q",
				jsonName(fe.Field()), fe.Param(), fmt.Sprint(fe.Value()))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.SchemaPath != "" && c.SchemaPath != DefaultSchemaPath {
		if _, err := os.Stat(c.SchemaPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: schema file not found: %s", c.SchemaPath)
		}
	}

	return nil
}

// jsonName maps a Config struct field to its JSON key for error messages.
func jsonName(field string) string {
	switch field {
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	case "OutputFormat":
		return "output_format"
	}
	return strings.ToLower(field)
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.OutputFormat == "" {
		result.OutputFormat = defaults.OutputFormat
	}
	if result.SchemaPath == "" {
		result.SchemaPath = defaults.SchemaPath
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv returns a copy of the config with APPFORM_* environment
// variables taking precedence over file values.
func (c *Config) ApplyEnv() Config {
	result := *c

	if v := os.Getenv(EnvLogLevel); v != "" {
		result.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		result.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		result.OutputFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvSchemaPath); v != "" {
		result.SchemaPath = v
	}

	return result
}
