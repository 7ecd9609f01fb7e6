package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/dev-console/config.yaml
//  2. ~/.config/dev-console/config.yaml (if XDG_CONFIG_HOME was set to
//     something else, this is still tried as a fallback)
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return DefaultConfig(), nil
}

// LoadFromFile reads configuration from a specific file path. The file
// extension selects the codec: ".toml" uses BurntSushi/toml, anything
// else (including no extension) uses yaml.v3, matching pkg/settings'
// format-by-extension convention.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f, strings.EqualFold(filepath.Ext(path), ".toml"))
}

// LoadFromReader reads configuration from an io.Reader, decoding as TOML
// when asTOML is set and YAML otherwise. Unrecognized keybinding action
// names are dropped (with a warning) rather than failing the whole load.
func LoadFromReader(r io.Reader, asTOML bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}

	if asTOML {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse toml: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	sanitizeKeybindings(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

// sanitizeKeybindings drops any action name the app does not recognize,
// logging a warning instead of rejecting the whole config file.
func sanitizeKeybindings(cfg *Config) {
	for action := range cfg.Keybindings {
		if !KnownActions[action] {
			slog.Warn("config: ignoring unknown keybinding action", "action", action)
			delete(cfg.Keybindings, action)
		}
	}
}

// DefaultConfig returns the default configuration: the "default" layout
// preset, alt-screen + mouse capture enabled, and the baked-in
// keybindings.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:    "info",
			LogFile:     defaultLogFile(),
			KillTimeout: Duration{5 * time.Second},
		},
		Terminal: TerminalConfig{
			AltScreen: true,
			Mouse:     true,
		},
		Layout: LayoutConfig{
			Preset: "default",
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Keybindings: DefaultKeybindings(),
	}
}

func defaultLogFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(xdgCacheHome(home), "dev-console", "debug.log")
}

// applyEnvOverrides checks environment variables and overrides config
// values, mirroring the original prompt-pulse PPULSE_* convention under
// the new project's prefix.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DEVCONSOLE_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("DEVCONSOLE_LAYOUT"); v != "" {
		cfg.Layout.Preset = v
	}
	if v := os.Getenv("DEVCONSOLE_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "dev-console", "config.yaml"))

	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "dev-console", "config.yaml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgCacheHome returns XDG_CACHE_HOME or ~/.cache as fallback.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
