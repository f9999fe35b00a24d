// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Appearance source names.
const (
	AppearanceAuto     = "auto"     // portal, then terminal
	AppearancePortal   = "portal"   // org.freedesktop.portal.Settings over D-Bus
	AppearanceTerminal = "terminal" // terminal background detection
	AppearanceNone     = "none"     // always light
)

// Default configuration values.
const (
	DefaultAppearance = AppearanceAuto
	DefaultLogLevel   = "warn"
	DefaultFormat     = "plain"
)

// Config represents the wxui configuration.
type Config struct {
	Settings   SettingsConfig   `toml:"settings"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
	Output     OutputConfig     `toml:"output"`
}

// SettingsConfig locates the preference store.
type SettingsConfig struct {
	Path  string `toml:"path"`  // Empty = SettingsPath()
	Watch bool   `toml:"watch"` // Reload on external edits
}

// AppearanceConfig selects where the OS light/dark signal comes from.
type AppearanceConfig struct {
	Source string `toml:"source"` // auto, portal, terminal, none
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// OutputConfig holds CLI output defaults.
type OutputConfig struct {
	Format string `toml:"format"` // plain, json, yaml
	Color  bool   `toml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			Path:  "",
			Watch: true,
		},
		Appearance: AppearanceConfig{
			Source: DefaultAppearance,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
			Color:  true,
		},
	}
}

// ConfigDir returns the wxui config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "wxui")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// SettingsPath returns the default path to the preference store.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "settings.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ResolvedSettingsPath returns the configured settings path or the default.
func (c *Config) ResolvedSettingsPath() string {
	if c.Settings.Path != "" {
		return c.Settings.Path
	}
	return SettingsPath()
}
