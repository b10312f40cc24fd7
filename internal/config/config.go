// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quantity-editor/core/output"
	"quantity-editor/internal/errors"
	"quantity-editor/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Fields selects and extends the available quantity fields
	Fields FieldsConfig `json:"fields"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// FieldsConfig contains field-related settings
type FieldsConfig struct {
	// PresetFile is an optional HCL, YAML, TOML or JSON file with field definitions
	PresetFile string `json:"preset_file,omitempty"`

	// Default is the field used when a command names none
	Default string `json:"default"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat output.Format `json:"default_format"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// DefaultPath returns $HOME/.quantity-editor.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".quantity-editor.json")
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Fields: FieldsConfig{
			Default: "memory",
		},
		Output: OutputConfig{
			DefaultFormat: output.FormatCLI,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Parsing("decode config "+path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case output.FormatCLI, output.FormatJSON:
	default:
		return errors.Configf("unknown output format %q", c.Output.DefaultFormat)
	}
	if c.Fields.Default == "" {
		return errors.Config("fields.default must name a field")
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
