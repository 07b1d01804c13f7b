// Package config loads the on-disk TOML configuration. Every section is
// optional and user values extend the built-in defaults rather than
// replacing them. A missing or broken config file must never stop a
// decision from being made: loading falls back to defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "HALL_PASS_CONFIG"

// EnvDebug forces debug logging on when set to 1.
const EnvDebug = "HALL_PASS_DEBUG"

type Config struct {
	Commands CommandsConfig `toml:"commands"`
	Git      GitConfig      `toml:"git"`
	Paths    PathsConfig    `toml:"paths"`
	Audit    AuditConfig    `toml:"audit"`
	Debug    DebugConfig    `toml:"debug"`
}

type CommandsConfig struct {
	Safe      []string `toml:"safe"`
	DBClients []string `toml:"db_clients"`
}

type GitConfig struct {
	ProtectedBranches []string `toml:"protected_branches"`
}

type PathsConfig struct {
	Protected []string `toml:"protected"`
	ReadOnly  []string `toml:"read_only"`
	NoDelete  []string `toml:"no_delete"`
}

type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type DebugConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the zero user configuration: built-in sets only, audit and
// debug off.
func Default() *Config {
	return &Config{}
}

// Path returns the config file location: $HALL_PASS_CONFIG if set, else
// ~/.config/hall-pass/config.toml.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hall-pass", "config.toml")
}

// Load reads the config at path. A missing file yields defaults with no
// error; an unreadable or malformed file yields defaults plus the error so
// the caller can log it without failing the decision.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if os.Getenv(EnvDebug) == "1" {
		cfg.Debug.Enabled = true
	}
	return cfg, err
}

func load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// AuditPath returns the configured audit sink path, defaulting to
// ~/.local/state/hall-pass/audit.jsonl.
func (c *Config) AuditPath() string {
	if c.Audit.Path != "" {
		return c.Audit.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "hall-pass", "audit.jsonl")
}
