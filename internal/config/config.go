// Package config provides configuration file parsing for exergate.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Dir returns the exergate config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/exergate if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "exergate"), nil
}

// Config holds the engine settings that live outside the database: the
// identity of surfaces the observer treats specially and the daemon's
// timing knobs.
type Config struct {
	// SelfApp is how this application appears in the foreground stream.
	SelfApp string `yaml:"self_app"`
	// Launchers are home-screen surfaces (desktop shells, docks).
	Launchers []string `yaml:"launchers"`
	// Overlays are transient system surfaces that pause the countdown
	// instead of stopping it.
	Overlays []string `yaml:"overlays"`

	PollIntervalMillis   int `yaml:"poll_interval_millis"`
	DebounceMillis       int `yaml:"debounce_millis"`
	BlockCooldownSeconds int `yaml:"block_cooldown_seconds"`

	// BlockTerminal wraps the block surface in a terminal emulator,
	// e.g. [x-terminal-emulator, -e].
	BlockTerminal []string `yaml:"block_terminal"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SelfApp:              "exergate",
		PollIntervalMillis:   300,
		DebounceMillis:       500,
		BlockCooldownSeconds: 3,
	}
}

// PollInterval converts the configured poll cadence.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMillis) * time.Millisecond
}

// Debounce converts the configured start-suppression window.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// BlockCooldown converts the configured block relaunch suppression window.
func (c Config) BlockCooldown() time.Duration {
	return time.Duration(c.BlockCooldownSeconds) * time.Second
}

// Load reads {dir}/config.yaml, falling back to defaults when the file is
// missing, then applies environment overrides ({dir}/.env is loaded first
// when present). Malformed YAML is an error; a missing file is not.
func Load(dir string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
		applyFile(&cfg, fileCfg)
	}

	// Best effort: a missing .env just means no overrides.
	godotenv.Load(filepath.Join(dir, ".env"))
	applyEnv(&cfg)
	return cfg, nil
}

// Save writes cfg to {dir}/config.yaml, creating dir if needed.
func Save(dir string, cfg Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	serialized, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func applyFile(cfg *Config, fileCfg Config) {
	if fileCfg.SelfApp != "" {
		cfg.SelfApp = fileCfg.SelfApp
	}
	if len(fileCfg.Launchers) > 0 {
		cfg.Launchers = fileCfg.Launchers
	}
	if len(fileCfg.Overlays) > 0 {
		cfg.Overlays = fileCfg.Overlays
	}
	if fileCfg.PollIntervalMillis > 0 {
		cfg.PollIntervalMillis = fileCfg.PollIntervalMillis
	}
	if fileCfg.DebounceMillis > 0 {
		cfg.DebounceMillis = fileCfg.DebounceMillis
	}
	if fileCfg.BlockCooldownSeconds > 0 {
		cfg.BlockCooldownSeconds = fileCfg.BlockCooldownSeconds
	}
	if len(fileCfg.BlockTerminal) > 0 {
		cfg.BlockTerminal = fileCfg.BlockTerminal
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("EXERGATE_SELF_APP"); v != "" {
		cfg.SelfApp = v
	}
	if v := os.Getenv("EXERGATE_LAUNCHERS"); v != "" {
		cfg.Launchers = splitList(v)
	}
	if v := os.Getenv("EXERGATE_OVERLAYS"); v != "" {
		cfg.Overlays = splitList(v)
	}
	if v := os.Getenv("EXERGATE_POLL_INTERVAL_MS"); v != "" {
		if millis, err := strconv.Atoi(v); err == nil && millis > 0 {
			cfg.PollIntervalMillis = millis
		}
	}
	if v := os.Getenv("EXERGATE_DEBOUNCE_MS"); v != "" {
		if millis, err := strconv.Atoi(v); err == nil && millis > 0 {
			cfg.DebounceMillis = millis
		}
	}
	if v := os.Getenv("EXERGATE_BLOCK_COOLDOWN_S"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.BlockCooldownSeconds = seconds
		}
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
