package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AccountConfig holds the configuration for one connected calendar account.
type AccountConfig struct {
	// Email is the account's address and half of its filter identifier.
	Email string `mapstructure:"email" yaml:"email"`

	// Provider is "google" or "ics".
	Provider Provider `mapstructure:"provider" yaml:"provider"`

	// DisplayName is the user-defined label shown in the planner.
	DisplayName string `mapstructure:"display_name" yaml:"display_name"`

	// Color overrides the default per-account display color.
	Color string `mapstructure:"color" yaml:"color"`

	// FeedURL is the subscription URL for ICS accounts.
	FeedURL string `mapstructure:"feed_url" yaml:"feed_url"`

	// FamilyGroupID scopes this account to a family group.
	FamilyGroupID string `mapstructure:"family_group_id" yaml:"family_group_id"`

	// Enabled controls whether this account is actively polled.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// PollIntervalSec is how often (in seconds) to fetch events.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// GoogleConfig holds the OAuth client settings for Google Calendar access.
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string `mapstructure:"client_secret" yaml:"client_secret"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme        string `mapstructure:"theme" yaml:"theme"`
	WindowDays   int    `mapstructure:"window_days" yaml:"window_days"`
	PrimaryColor string `mapstructure:"primary_color" yaml:"primary_color"`
}

// AppConfig is the top-level application configuration. It also owns the
// persisted session selections (current family group) that survive restarts;
// they are updated only through Session setters, never read ambiently.
type AppConfig struct {
	Accounts []AccountConfig `mapstructure:"accounts" yaml:"accounts"`
	Google   GoogleConfig    `mapstructure:"google" yaml:"google"`
	Display  DisplayConfig   `mapstructure:"display" yaml:"display"`

	// CurrentFamilyGroupID is the group selected in the last session.
	CurrentFamilyGroupID string `mapstructure:"current_family_group_id" yaml:"current_family_group_id"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dockly/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "dockly", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Accounts: []AccountConfig{},
		Display: DisplayConfig{
			Theme:        "default",
			WindowDays:   35,
			PrimaryColor: "#0091ff",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("display.theme", "default")
	v.SetDefault("display.window_days", 35)
	v.SetDefault("display.primary_color", "#0091ff")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	for i := range cfg.Accounts {
		if cfg.Accounts[i].PollIntervalSec == 0 {
			cfg.Accounts[i].PollIntervalSec = 300
		}
		if !cfg.Accounts[i].Enabled {
			// Viper unmarshals missing bools as false; treat unset as true.
			key := fmt.Sprintf("accounts.%d.enabled", i)
			if !v.IsSet(key) {
				cfg.Accounts[i].Enabled = true
			}
		}
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("accounts", cfg.Accounts)
	v.Set("google", cfg.Google)
	v.Set("display", cfg.Display)
	v.Set("current_family_group_id", cfg.CurrentFamilyGroupID)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
