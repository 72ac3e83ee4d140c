// Package nconfig loads the optional REPL configuration file: keymap
// profile selection and overrides, history file path/capacity, and the
// prompt string. Route/pattern/resolver configuration is not a thing
// this package touches — it is pure REPL ergonomics, kept separate
// from the command-matching core.
package nconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// KeymapPreset names one of the built-in keymap.Named profiles.
type KeymapPreset string

const (
	KeymapDefault KeymapPreset = "default"
	KeymapEmacs   KeymapPreset = "emacs"
	KeymapVi      KeymapPreset = "vi"
	KeymapVSCode  KeymapPreset = "vscode"
)

// UnmarshalText parses a preset name, defaulting to KeymapDefault on an
// empty value (mirrors peco's OnCancelBehavior.UnmarshalText).
func (k *KeymapPreset) UnmarshalText(b []byte) error {
	switch s := strings.ToLower(string(b)); s {
	case "":
		*k = KeymapDefault
	case string(KeymapDefault), string(KeymapEmacs), string(KeymapVi), string(KeymapVSCode):
		*k = KeymapPreset(s)
	default:
		return fmt.Errorf("invalid keymap preset %q: must be one of default, emacs, vi, vscode", s)
	}
	return nil
}

// Config holds everything loadable from an on-disk REPL configuration
// file. Route/handler registration always happens in code, never from
// file-based config; this is REPL behavior only.
type Config struct {
	Prompt  string       `json:"Prompt" yaml:"Prompt"`
	Keymap  KeymapPreset `json:"Keymap" yaml:"Keymap"`
	// KeymapOverrides lists binding changes for the Keymap preset as a
	// flat map keyed "add:<chord>" or "remove:<chord>", valued by action
	// name. Validate checks the key prefixes; nothing in this module
	// applies the entries to a keymap.Profile.
	KeymapOverrides map[string]string `json:"KeymapOverrides" yaml:"KeymapOverrides"`

	HistoryFile     string `json:"HistoryFile" yaml:"HistoryFile"`
	HistoryCapacity int    `json:"HistoryCapacity" yaml:"HistoryCapacity"`

	// CompletionSources is decoded from the file and kept as-is; no part
	// of this module reads it.
	CompletionSources []string `json:"CompletionSources" yaml:"CompletionSources"`
}

// DefaultPrompt is the prompt Init sets, so a Config loaded without a
// Prompt key still has one. (pkg/repl's own fallback is "> ".)
const DefaultPrompt = "nuru> "

// Init populates c with defaults, the way peco's Config.Init seeds
// Prompt/Layout before a file is read.
func (c *Config) Init() {
	c.Prompt = DefaultPrompt
	c.Keymap = KeymapDefault
	c.HistoryCapacity = 1000
}

// Validate checks invariants a decoded file cannot enforce through
// struct tags alone.
func (c *Config) Validate() error {
	switch c.Keymap {
	case KeymapDefault, KeymapEmacs, KeymapVi, KeymapVSCode:
	default:
		return fmt.Errorf("nconfig: invalid Keymap %q", c.Keymap)
	}
	if c.HistoryCapacity < 0 {
		return fmt.Errorf("nconfig: HistoryCapacity must be >= 0, got %d", c.HistoryCapacity)
	}
	for key := range c.KeymapOverrides {
		if !strings.HasPrefix(key, "add:") && !strings.HasPrefix(key, "remove:") {
			return fmt.Errorf("nconfig: KeymapOverrides key %q must start with \"add:\" or \"remove:\"", key)
		}
	}
	return nil
}

// ReadFilename reads and validates a config file, dispatching on
// extension exactly as peco's Config.ReadFilename does (YAML for
// .yaml/.yml, JSON otherwise).
func ReadFilename(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("nconfig: open %s: %w", filename, err)
	}
	defer f.Close()

	c := &Config{}
	c.Init()

	switch ext := filepath.Ext(filename); ext {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(c); err != nil {
			return nil, fmt.Errorf("nconfig: decode %s: %w", filename, err)
		}
	default:
		if err := json.NewDecoder(f).Decode(c); err != nil {
			return nil, fmt.Errorf("nconfig: decode %s: %w", filename, err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var configFilenames = []string{"config.yaml", "config.yml", "config.json"}

// Locate searches the XDG base-directory locations for a nuru config
// file, mirroring peco's LocateRcfile search order but under "nuru"
// instead of "peco".
func Locate() (string, error) {
	home, homeErr := os.UserHomeDir()

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if file, ok := findIn(filepath.Join(dir, "nuru")); ok {
			return file, nil
		}
	} else if homeErr == nil {
		if file, ok := findIn(filepath.Join(home, ".config", "nuru")); ok {
			return file, nil
		}
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for _, dir := range strings.Split(dirs, string(filepath.ListSeparator)) {
			if file, ok := findIn(filepath.Join(dir, "nuru")); ok {
				return file, nil
			}
		}
	}

	if homeErr == nil {
		if file, ok := findIn(filepath.Join(home, ".nuru")); ok {
			return file, nil
		}
	}

	return "", fmt.Errorf("nconfig: config file not found")
}

func findIn(dir string) (string, bool) {
	for _, basename := range configFilenames {
		file := filepath.Join(dir, basename)
		if _, err := os.Stat(file); err == nil {
			return file, true
		}
	}
	return "", false
}
