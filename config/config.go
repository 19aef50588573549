package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Triggers      TriggersConfig `toml:"triggers"`
	Suppress      SuppressConfig `toml:"suppress"`
	Web           WebConfig      `toml:"web"`
	DeveloperMode bool           `toml:"developer_mode"`
}

type TriggersConfig struct {
	Win bool `toml:"win"`
	Alt bool `toml:"alt"`
}

type SuppressConfig struct {
	// Mode is "always" (suppress every isolated modifier tap) or
	// "threshold" (suppress only holds longer than ThresholdMs).
	Mode        string `toml:"mode"`
	ThresholdMs int    `toml:"threshold_ms"`
	// DummyKey names the synthetic key released to cancel the menu
	// gesture, e.g. "none" or "f24".
	DummyKey string `toml:"dummy_key"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

const (
	ModeAlways    = "always"
	ModeThreshold = "threshold"
)

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Triggers: TriggersConfig{
			Win: true,
			Alt: true,
		},
		Suppress: SuppressConfig{
			Mode:        ModeAlways,
			ThresholdMs: 300,
			DummyKey:    "none",
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8390,
		},
		DeveloperMode: false,
	}
}

// ConfigDir returns the directory holding the configuration file and
// the decision database, creating it if needed.
func ConfigDir() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}

	configDir := filepath.Join(appData, "prevent-alt-win-menu")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the TOML file
// If the file doesn't exist, it creates it with default values
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	// Load existing config
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes a configuration document from a string, applying the
// same defaults and validation as Load.
func Parse(doc string) (*Config, error) {
	cfg := defaultConfig()
	if _, err := toml.Decode(doc, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the agent cannot act on.
func (c *Config) Validate() error {
	switch c.Suppress.Mode {
	case ModeAlways, ModeThreshold:
	default:
		return fmt.Errorf("unknown suppress mode: %q", c.Suppress.Mode)
	}
	if c.Suppress.ThresholdMs < 0 {
		return fmt.Errorf("threshold_ms must not be negative: %d", c.Suppress.ThresholdMs)
	}
	if !c.Triggers.Win && !c.Triggers.Alt {
		return fmt.Errorf("at least one of triggers.win or triggers.alt must be enabled")
	}
	if c.Web.Enabled && (c.Web.Port < 1 || c.Web.Port > 65535) {
		return fmt.Errorf("invalid web port: %d", c.Web.Port)
	}
	return nil
}

// Threshold returns the configured threshold as a duration.
func (c *Config) Threshold() time.Duration {
	return time.Duration(c.Suppress.ThresholdMs) * time.Millisecond
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
