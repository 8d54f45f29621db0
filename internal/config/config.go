// Package config parses cascade.toml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
)

// FileName is the configuration file looked up by Load.
const FileName = "cascade.toml"

// DefaultAccentColor is the default TUI accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// DefaultIntentDelayMS matches the menu engine's default hover delay.
const DefaultIntentDelayMS = 400

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Primary modifier settings.
const (
	ModifierAuto = "auto"
	ModifierCtrl = "ctrl"
	ModifierMeta = "meta"
)

// Config is the top-level cascade.toml configuration.
type Config struct {
	Menu MenuConfig `toml:"menu"`

	// Keys overrides command shortcuts: command id -> shortcut texts.
	Keys map[string][]string `toml:"keys" jsonschema_description:"Shortcut overrides: command id to a list of alternative shortcut texts"`

	TUI TUIConfig `toml:"tui"`
	Log LogConfig `toml:"log"`
}

// MenuConfig tunes the menu engine.
type MenuConfig struct {
	IntentDelayMS   int    `toml:"intent_delay_ms" jsonschema:"minimum=1,default=400" jsonschema_description:"Hover delay before submenus open or close"`
	PrimaryModifier string `toml:"primary_modifier" jsonschema:"enum=auto,enum=ctrl,enum=meta,default=auto"`
	KeepOpenOnBlur  bool   `toml:"keep_open_on_blur" jsonschema_description:"Debug override: losing window focus does not close menus"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color" jsonschema:"pattern=^#[0-9A-Fa-f]{6}$"`
	Mouse       bool   `toml:"mouse"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	File  string `toml:"file" jsonschema_description:"Log file path; empty discards logs in the TUI and uses stderr elsewhere"`
}

// IntentDelay returns the hover delay as a duration.
func (c *Config) IntentDelay() time.Duration {
	return time.Duration(c.Menu.IntentDelayMS) * time.Millisecond
}

// Binding returns the configured override for command id, or nil.
func (c *Config) Binding(id string) shortcut.Binding {
	texts, ok := c.Keys[id]
	if !ok {
		return nil
	}
	if g := shortcut.ParseGroup(texts...); g != nil {
		return g
	}
	return nil
}

// KeyIDs returns the overridden command ids, sorted.
func (c *Config) KeyIDs() []string {
	ids := make([]string, 0, len(c.Keys))
	for id := range c.Keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Menu.IntentDelayMS < 1 {
		errs = append(errs, fmt.Errorf("menu.intent_delay_ms must be >= 1"))
	}
	if !slices.Contains([]string{ModifierAuto, ModifierCtrl, ModifierMeta}, c.Menu.PrimaryModifier) {
		errs = append(errs, fmt.Errorf("menu.primary_modifier must be one of auto, ctrl, meta"))
	}

	for _, id := range c.KeyIDs() {
		texts := c.Keys[id]
		if len(texts) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s must list at least one shortcut", id))
		}
		for _, text := range texts {
			if !shortcut.Parse(text).Bound() {
				errs = append(errs, fmt.Errorf("keys.%s: %q is not a valid shortcut", id, text))
			}
		}
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#7D56F4\")"))
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		errs = append(errs, fmt.Errorf("log.level must be one of trace, debug, info, warn, error, disabled"))
	}

	return errors.Join(errs...)
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Menu: MenuConfig{
			IntentDelayMS:   DefaultIntentDelayMS,
			PrimaryModifier: ModifierAuto,
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
			Mouse:       true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads cascade.toml from the given path. If path is empty, it walks up
// from the current working directory looking for cascade.toml. Returns an
// error if the file contains unknown keys (likely typos).
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, joinKeys(keys))
	}

	return &cfg, nil
}

// Find walks up from the current directory looking for cascade.toml and
// reports whether one exists.
func Find() (string, bool) {
	path, err := findConfig()
	return path, err == nil
}

// joinKeys formats a slice of key names for display.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

// findConfig walks up from the current directory looking for cascade.toml.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: %s not found (searched up from %s)", FileName, dir)
		}
		dir = parent
	}
}

// InitFile writes a default cascade.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	content := `# cascade.toml: Cascade menu engine configuration

[menu]
intent_delay_ms = 400        # hover delay before submenus open or close
primary_modifier = "auto"    # auto | ctrl | meta
keep_open_on_blur = false    # debug: losing window focus keeps menus open

[keys]                       # command id -> alternative shortcuts
# "file.save" = ["Primary+S"]
# "edit.delete" = ["Delete", "Shift+Delete"]

[tui]
accent_color = "#7D56F4"     # hex color for the menu bar and highlights
mouse = true                 # hover and click support

[log]
level = "info"               # trace | debug | info | warn | error | disabled
file = ""                    # empty = no log file for the TUI
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
