// Package config provides configuration loading and management for
// volumatrix. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Windowing mode names accepted in the config file.
const (
	WindowModeMinMax   = "minmax"
	WindowModeAuto     = "auto"
	WindowModeExplicit = "explicit"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Decoder parameters
	Decoder struct {
		// VerboseWarnings controls whether non-fatal decode diagnostics
		// (unexpected sample type, payload length reconciliation) are logged
		VerboseWarnings bool `yaml:"verboseWarnings"`
	} `yaml:"decoder"`

	// Windowing parameters for slice display
	Windowing struct {
		// Mode selects the window/level preset: "minmax" spans the volume's
		// full intensity range, "auto" centers on the sample mean, and
		// "explicit" uses the Window/Level values below
		Mode string `yaml:"mode"`

		// Window is the explicit window width in sample-value units
		Window float64 `yaml:"window"`

		// Level is the explicit window center in sample-value units
		Level float64 `yaml:"level"`
	} `yaml:"windowing"`

	// Output parameters
	Output struct {
		// ExtractSlices determines whether slice sequences are exported
		// after decoding
		ExtractSlices bool `yaml:"extractSlices"`

		// SlicesDir is the directory slice sequences are written to
		SlicesDir string `yaml:"slicesDir"`

		// Axes lists the axes to extract slice sequences along
		Axes []string `yaml:"axes"`

		// JPEGQuality is the encoder quality for exported slices (1-100)
		JPEGQuality int `yaml:"jpegQuality"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default decoder parameters
	cfg.Decoder.VerboseWarnings = true

	// Set default windowing parameters
	cfg.Windowing.Mode = WindowModeMinMax
	cfg.Windowing.Window = 0
	cfg.Windowing.Level = 0

	// Set default output parameters
	cfg.Output.ExtractSlices = false
	cfg.Output.SlicesDir = "extracted_slices"
	cfg.Output.Axes = []string{"x", "y", "z"}
	cfg.Output.JPEGQuality = 90

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
