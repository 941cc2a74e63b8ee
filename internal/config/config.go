// Package config persists user-level settings for hoards under the
// platform config directory. The console receives a Config at construction
// and re-injects it on save; nothing here is ambient global state.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/chrisbataille/hoards/internal/policy"
)

// Dir returns the hoards config directory under the user config base.
// On Linux this typically resolves to $XDG_CONFIG_HOME/hoards; on macOS to
// ~/Library/Application Support/hoards. Falls back to HOME when
// UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "hoards"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Config is the explicit settings struct handed to the console.
type Config struct {
	Theme string `json:"theme,omitempty"`
	// Sources toggles which package-manager sources are scanned/shown.
	// Missing entries default to enabled.
	Sources map[string]bool `json:"sources,omitempty"`
	// GlobalPolicy is the inventory-wide default update policy.
	GlobalPolicy *policy.Policy `json:"global_policy,omitempty"`
	// SourcePolicies are per-source default update policies, keyed by
	// source tag.
	SourcePolicies map[string]policy.Policy `json:"source_policies,omitempty"`
	// UndoDepth bounds the console's undo/redo history.
	UndoDepth int `json:"undo_depth,omitempty"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		Theme:     "vitesse",
		UndoDepth: 100,
	}
}

// SourceEnabled honors the toggle map with enabled-by-default semantics.
func (c Config) SourceEnabled(source string) bool {
	if c.Sources == nil {
		return true
	}
	on, ok := c.Sources[source]
	return !ok || on
}

// Load reads the config file, returning Defaults when it does not exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Defaults(), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Defaults(), err
	}
	cfg := Defaults()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Defaults(), err
	}
	if cfg.UndoDepth <= 0 {
		cfg.UndoDepth = Defaults().UndoDepth
	}
	return cfg, nil
}

// Save writes the config file, creating parent directories.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
