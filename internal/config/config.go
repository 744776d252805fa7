// Package config loads the modalprompt CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nao1215/modalprompt"
)

// UI names accepted by the ui setting.
const (
	UITerminal = "terminal"
	UITea      = "tea"
)

// PlatformAuto selects the platform from the environment.
const PlatformAuto = "auto"

// OutputStdout and OutputClipboard are the non-file output destinations.
const (
	OutputStdout    = "-"
	OutputClipboard = "clipboard"
)

// HistoryConfig holds history-related configuration
type HistoryConfig struct {
	File       string `toml:"file"`        // empty disables history
	MaxEntries int    `toml:"max_entries"` // 0 uses the library default
}

// Config holds the modalprompt configuration
type Config struct {
	Title       string        `toml:"title"`
	Default     string        `toml:"default"`
	MultiLine   bool          `toml:"multiline"`
	Platform    string        `toml:"platform"` // "auto", "desktop" or "touch"
	UI          string        `toml:"ui"`       // "terminal" or "tea"
	Theme       string        `toml:"theme"`
	Placeholder string        `toml:"placeholder"`
	SubmitLabel string        `toml:"submit_label"`
	Output      string        `toml:"output"` // "-", "clipboard" or a file path
	History     HistoryConfig `toml:"history"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Platform: PlatformAuto,
		UI:       UITerminal,
		Theme:    modalprompt.ThemeDefault.Name,
		Output:   OutputStdout,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/modalprompt/config.toml, or
// ~/.config/modalprompt/config.toml when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "modalprompt", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "modalprompt", "config.toml"), nil
}

// Load reads the config file at path, or at DefaultPath when path is empty.
// A missing default file yields Default() without error; a missing
// explicit file is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of Default() and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Default(), fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if cfg.History.File != "" {
		expanded, err := expandPath(cfg.History.File)
		if err != nil {
			return Default(), fmt.Errorf("expand history.file: %w", err)
		}
		cfg.History.File = expanded
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks that every enumerated setting holds a known value.
func (c Config) Validate() error {
	switch strings.ToLower(c.Platform) {
	case PlatformAuto, "desktop", "touch", "mobile":
	default:
		return fmt.Errorf("invalid platform %q: must be \"auto\", \"desktop\" or \"touch\"", c.Platform)
	}
	switch c.UI {
	case UITerminal, UITea:
	default:
		return fmt.Errorf("invalid ui %q: must be %q or %q", c.UI, UITerminal, UITea)
	}
	if _, ok := modalprompt.ThemeByName(c.Theme); !ok {
		return fmt.Errorf("invalid theme %q: must be one of %s", c.Theme, strings.Join(modalprompt.ThemeNames(), ", "))
	}
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("invalid history.max_entries %d: must not be negative", c.History.MaxEntries)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}
