// Package config handles loggy configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration structure for loggy.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// API settings for the log server.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Emotes settings for third-party emote rendering.
	Emotes EmotesConfig `yaml:"emotes" mapstructure:"emotes"`

	// Cache settings for the local log cache.
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`
}

// GlobalConfig contains global loggy settings.
type GlobalConfig struct {
	// DataDir is where loggy stores its data (default: ~/.local/share/loggy).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ConfigDir is where config files are stored (default: ~/.config/loggy).
	ConfigDir string `yaml:"config_dir" mapstructure:"config_dir"`
}

// APIConfig contains log server settings.
type APIConfig struct {
	// BaseURL is the justlog-compatible server root.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a single request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// EmotesConfig contains third-party emote settings.
type EmotesConfig struct {
	// Enabled toggles emote tokenization and tooltips.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// BaseURL is the 7TV API root.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// CacheConfig contains local log cache settings.
type CacheConfig struct {
	// Path is the SQLite cache file path. Empty disables the cache.
	Path string `yaml:"path" mapstructure:"path"`

	// MaxAgeDays prunes cached days older than this on startup.
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// File is an optional log file path. The TUI owns the terminal, so
	// console output is only used by non-interactive commands.
	File string `yaml:"file" mapstructure:"file"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// Theme selects the color palette (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// RefreshInterval is how often the current day's log is re-fetched.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// Mouse enables mouse tracking for emote hover tooltips.
	Mouse bool `yaml:"mouse" mapstructure:"mouse"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Global: GlobalConfig{
			DataDir:   filepath.Join(home, ".local", "share", "loggy"),
			ConfigDir: filepath.Join(home, ".config", "loggy"),
		},
		API: APIConfig{
			BaseURL: "https://logs.zonian.dev",
			Timeout: 15 * time.Second,
		},
		Emotes: EmotesConfig{
			Enabled: true,
			BaseURL: "https://7tv.io",
		},
		Cache: CacheConfig{
			Path:       filepath.Join(home, ".local", "share", "loggy", "logcache.db"),
			MaxAgeDays: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		TUI: TUIConfig{
			Theme:           "default",
			RefreshInterval: 30 * time.Second,
			Mouse:           true,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}

	if err := validateURL("api.base_url", c.API.BaseURL); err != nil {
		return err
	}
	if c.Emotes.Enabled {
		if err := validateURL("emotes.base_url", c.Emotes.BaseURL); err != nil {
			return err
		}
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.TUI.RefreshInterval < 5*time.Second {
		return fmt.Errorf("tui.refresh_interval must be at least 5s, got %s", c.TUI.RefreshInterval)
	}
	if c.Cache.MaxAgeDays < 0 {
		return fmt.Errorf("cache.max_age_days must not be negative, got %d", c.Cache.MaxAgeDays)
	}
	return nil
}

// SettingsPath returns where the mutable UI settings file lives.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Global.DataDir, "settings.json")
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s %q", key, raw)
	}
	return nil
}
