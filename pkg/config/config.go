// Package config loads the application's structural configuration: the
// tab-bar layout, key bindings, terminal driver options, and the active
// theme name. It is distinct from pkg/settings (the user's per-sketch
// build profile) — this is UI shape, not build input.
package config

// Config is the top-level structural configuration, loaded once at
// startup and never mutated afterward; a changed config.yaml only takes
// effect on the next launch.
type Config struct {
	General     GeneralConfig     `yaml:"general" toml:"general"`
	Terminal    TerminalConfig    `yaml:"terminal" toml:"terminal"`
	Layout      LayoutConfig      `yaml:"layout" toml:"layout"`
	Theme       ThemeConfig       `yaml:"theme" toml:"theme"`
	Keybindings KeybindingsConfig `yaml:"keybindings" toml:"keybindings"`
}

// GeneralConfig holds ambient runtime settings not specific to any one
// widget.
type GeneralConfig struct {
	LogLevel    string   `yaml:"log_level" toml:"log_level"`
	LogFile     string   `yaml:"log_file" toml:"log_file"`
	KillTimeout Duration `yaml:"kill_timeout" toml:"kill_timeout"`
}

// TerminalConfig mirrors pkg/driver.Options; kept as a separate struct
// here so the driver package itself stays free of a config dependency.
type TerminalConfig struct {
	AltScreen bool `yaml:"alt_screen" toml:"alt_screen"`
	Mouse     bool `yaml:"mouse" toml:"mouse"`
}

// LayoutConfig names which tab-bar preset to use and, for a "custom"
// preset, the literal tab order.
type LayoutConfig struct {
	Preset string      `yaml:"preset" toml:"preset"`
	Tabs   []TabConfig `yaml:"tabs,omitempty" toml:"tabs,omitempty"`
}

// TabConfig is one entry in the tab bar: a stable id (used for
// switch-tab routing and pane lookup) and its display label.
type TabConfig struct {
	ID    string `yaml:"id" toml:"id"`
	Label string `yaml:"label" toml:"label"`
}

// ThemeConfig selects the color palette from pkg/theme's registry.
type ThemeConfig struct {
	Name string `yaml:"name" toml:"name"`
}

// KeybindingsConfig overrides the default action-to-key bindings
// documented in pkg/app. Unrecognized action names are dropped with a
// logged warning rather than rejecting the whole file — per spec.md
// §6's "invalid entries degrade to defaults; no crash on partial
// config".
type KeybindingsConfig map[string]string

// KnownActions is the set of action names a KeybindingsConfig entry may
// legally name. Anything else is invalid.
var KnownActions = map[string]bool{
	"quit":           true,
	"cancel":         true,
	"focus-next":     true,
	"focus-prev":     true,
	"activate":       true,
	"tab-left":       true,
	"tab-right":      true,
	"launch-compile": true,
	"launch-upload":  true,
	"launch-monitor": true,
	"cancel-command": true,
}

// DefaultKeybindings returns the bindings baked into the widgets today,
// named so a config.yaml can document or override them.
func DefaultKeybindings() KeybindingsConfig {
	return KeybindingsConfig{
		"quit":           "q",
		"cancel":         "esc",
		"focus-next":     "tab",
		"focus-prev":     "shift+tab",
		"activate":       "enter",
		"tab-left":       "left",
		"tab-right":      "right",
		"launch-compile": "c",
		"launch-upload":  "u",
		"launch-monitor": "m",
		"cancel-command": "x",
	}
}
