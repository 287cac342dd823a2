// Package config holds codepad configuration, loaded from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all codepad configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Timing knobs for the streak machinery
	Timing TimingConfig `yaml:"timing"`

	// Persistence
	Storage StorageConfig `yaml:"storage"`

	// Reference snapshot pane
	Reference ReferenceConfig `yaml:"reference"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// UI preferences
	UI UIConfig `yaml:"ui"`
}

// TimingConfig configures the streak and persistence timers. Durations are
// strings ("10s", "500ms") so the config file stays readable.
type TimingConfig struct {
	InactivityWindow  string `yaml:"inactivity_window"`  // streak reset after this quiet period
	SaveDebounce      string `yaml:"save_debounce"`      // quiet period before a save fires
	ExclamationTTL    string `yaml:"exclamation_ttl"`    // how long a milestone exclamation stays visible
	MilestoneInterval int    `yaml:"milestone_interval"` // edits between exclamations
}

// StorageConfig configures the SQLite store.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ReferenceConfig configures the reference snapshot pane.
type ReferenceConfig struct {
	Path           string `yaml:"path"`            // reference snapshot file
	ReloadThrottle string `yaml:"reload_throttle"` // throttle window for change bursts
}

// LoggingConfig configures file logging.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"` // debug, info, warn, error
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "codepad",
		Version: "0.2.0",

		Timing: TimingConfig{
			InactivityWindow:  "10s",
			SaveDebounce:      "500ms",
			ExclamationTTL:    "3s",
			MilestoneInterval: 10,
		},

		Storage: StorageConfig{
			DatabasePath: ".codepad/codepad.db",
		},

		Reference: ReferenceConfig{
			Path:           ".codepad/reference.md",
			ReloadThrottle: "250ms",
		},

		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},

		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("CODEPAD_DB"); path != "" {
		c.Storage.DatabasePath = path
	}
	if path := os.Getenv("CODEPAD_REFERENCE"); path != "" {
		c.Reference.Path = path
	}
	if os.Getenv("CODEPAD_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
	if theme := os.Getenv("CODEPAD_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// GetInactivityWindow returns the streak inactivity window as a duration.
func (c *Config) GetInactivityWindow() time.Duration {
	return parseDuration(c.Timing.InactivityWindow, 10*time.Second)
}

// GetSaveDebounce returns the persistence debounce wait as a duration.
func (c *Config) GetSaveDebounce() time.Duration {
	return parseDuration(c.Timing.SaveDebounce, 500*time.Millisecond)
}

// GetExclamationTTL returns the exclamation visible lifetime as a duration.
func (c *Config) GetExclamationTTL() time.Duration {
	return parseDuration(c.Timing.ExclamationTTL, 3*time.Second)
}

// GetMilestoneInterval returns how many edits separate exclamations.
func (c *Config) GetMilestoneInterval() int {
	if c.Timing.MilestoneInterval <= 0 {
		return 10
	}
	return c.Timing.MilestoneInterval
}

// GetReloadThrottle returns the reference reload throttle window.
func (c *Config) GetReloadThrottle() time.Duration {
	return parseDuration(c.Reference.ReloadThrottle, 250*time.Millisecond)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
