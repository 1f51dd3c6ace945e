package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

// TestLoadConfigMissingFile verifies defaults are returned when the config
// file does not exist
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Expected default configuration, got %+v", cfg)
	}
}

// TestConfigRoundTrip verifies a saved configuration loads back with equal
// values
func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Decoder.VerboseWarnings = false
	cfg.Windowing.Mode = WindowModeExplicit
	cfg.Windowing.Window = 350
	cfg.Windowing.Level = 40
	cfg.Output.ExtractSlices = true
	cfg.Output.Axes = []string{"z"}
	cfg.Output.JPEGQuality = 75

	path := filepath.Join(t.TempDir(), "volumatrix.yaml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("Round-tripped config differs:\nsaved:  %+v\nloaded: %+v", cfg, loaded)
	}
}

// TestCreateDefaultConfigFile verifies the generated file parses back to the
// defaults
func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "volumatrix.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("Failed to create default config file: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}
	if !reflect.DeepEqual(loaded, DefaultConfig()) {
		t.Errorf("Generated config differs from defaults: %+v", loaded)
	}
}
