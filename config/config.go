// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	appName        = "holdspeak"
	configFileName = "config.json"
)

// Config represents the application configuration. Loaded once at
// startup; immutable thereafter.
type Config struct {
	// Hotkey is the push-to-talk combination: modifier tokens
	// (cmd|shift|ctrl|alt, optionally suffixed _l/_r) joined by "+",
	// optionally followed by one plain key.
	Hotkey string `json:"hotkey"`

	// Model is passed through to the transcription engine.
	Model string `json:"model"`

	// APIKey authenticates against the transcription API. Falls back to
	// the OPENAI_API_KEY environment variable when empty.
	APIKey string `json:"api_key,omitempty"`

	// BaseURL overrides the transcription API endpoint, for
	// OpenAI-compatible servers.
	BaseURL string `json:"base_url,omitempty"`

	// Language is the spoken language code; empty means auto-detect.
	Language string `json:"language,omitempty"`

	// Vocabulary maps misheard phrases to their replacements, applied to
	// every transcript.
	Vocabulary map[string]string `json:"vocabulary,omitempty"`

	// History enables the local transcript history store.
	History bool `json:"history"`

	// Notifications enables desktop notifications.
	Notifications bool `json:"notifications"`

	// PastePrimeDelayMS and PasteSettleDelayMS tune the clipboard
	// protocol's two waits; zero keeps the defaults.
	PastePrimeDelayMS  int `json:"paste_prime_delay_ms,omitempty"`
	PasteSettleDelayMS int `json:"paste_settle_delay_ms,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Hotkey:        "cmd_r",
		Model:         "whisper-1",
		History:       true,
		Notifications: true,
	}
}

// Load loads configuration from the config file. A missing file is
// created with defaults; a malformed file falls back to defaults with a
// warning. Neither is fatal.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if werr := cfg.saveTo(path); werr != nil {
				slog.Warn("write default config", "path", path, "error", werr)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		slog.Warn("parse config, using defaults", "path", path, "error", err)
		return Default(), nil
	}
	if cfg.Hotkey == "" {
		cfg.Hotkey = Default().Hotkey
	}
	if cfg.Model == "" {
		cfg.Model = Default().Model
	}
	return cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}
	return c.saveTo(path)
}

func (c *Config) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolveAPIKey returns the configured API key, falling back to the
// environment.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// DataDir returns the directory for local state such as the transcript
// history.
func DataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}
