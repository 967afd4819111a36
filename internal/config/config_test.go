package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad api url", func(c *Config) { c.API.BaseURL = "not a url" }},
		{"bad emote url", func(c *Config) { c.Emotes.BaseURL = "://" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"tiny refresh", func(c *Config) { c.TUI.RefreshInterval = time.Second }},
		{"negative cache age", func(c *Config) { c.Cache.MaxAgeDays = -1 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidateIgnoresEmoteURLWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Emotes.Enabled = false
	cfg.Emotes.BaseURL = "garbage"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled emotes should skip URL validation: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: https://logs.example.com
emotes:
  enabled: false
tui:
  theme: high-contrast
  refresh_interval: 45s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://logs.example.com" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Emotes.Enabled {
		t.Error("emotes should be disabled")
	}
	if cfg.TUI.Theme != "high-contrast" {
		t.Errorf("theme = %q", cfg.TUI.Theme)
	}
	if cfg.TUI.RefreshInterval != 45*time.Second {
		t.Errorf("refresh = %s", cfg.TUI.RefreshInterval)
	}
	// Unset keys keep defaults.
	if cfg.Cache.MaxAgeDays != 30 {
		t.Errorf("cache max age = %d, want default 30", cfg.Cache.MaxAgeDays)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestExpandTilde(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := expandTilde("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("expandTilde(~/x) = %q", got)
	}
	if got := expandTilde("/abs/x"); got != "/abs/x" {
		t.Errorf("expandTilde(/abs/x) = %q", got)
	}
}
