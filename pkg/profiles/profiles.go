// Package profiles implements CRUD over named, persisted Settings
// snapshots. Profiles never share mutable state with the live settings
// manager: Load returns a plain value, and the caller decides whether and
// how to commit it via settings.Manager.Update.
package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tinyland/devconsole/pkg/settings"
)

// Manager enumerates and persists named Settings snapshots under dir,
// one file per profile.
type Manager struct {
	dir string
	ext string // ".yaml" or ".toml"; defaults to ".yaml"
}

// New returns a profile Manager rooted at dir. ext selects the on-disk
// format for newly saved profiles ("" defaults to ".yaml").
func New(dir, ext string) *Manager {
	if ext == "" {
		ext = ".yaml"
	}
	return &Manager{dir: dir, ext: ext}
}

// DefaultDir returns $XDG_CONFIG_HOME/dev-console/profiles (or the
// ~/.config fallback).
func DefaultDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dev-console", "profiles")
}

func (m *Manager) pathFor(name string) string {
	return filepath.Join(m.dir, name+m.ext)
}

// Save writes s under name, creating the profiles directory if needed.
func (m *Manager) Save(name string, s settings.Settings) error {
	if name == "" {
		return fmt.Errorf("profiles: name must not be empty")
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("profiles: create dir %s: %w", m.dir, err)
	}

	path := m.pathFor(name)
	data, err := settings.Encode(path, s)
	if err != nil {
		return fmt.Errorf("profiles: encode %s: %w", name, err)
	}
	if err := settings.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("profiles: write %s: %w", name, err)
	}
	return nil
}

// Load reads the named profile and returns its Settings value. It does
// not mutate any live settings state.
func (m *Manager) Load(name string) (settings.Settings, error) {
	path, err := m.resolve(name)
	if err != nil {
		return settings.Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("profiles: read %s: %w", name, err)
	}

	var s settings.Settings
	if err := settings.Decode(path, data, &s); err != nil {
		return settings.Settings{}, fmt.Errorf("profiles: parse %s: %w", name, err)
	}
	return s, nil
}

// List returns the names of all saved profiles, sorted alphabetically.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("profiles: list %s: %w", m.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" && ext != ".toml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named profile. It is an error if the profile does
// not exist.
func (m *Manager) Delete(name string) error {
	path, err := m.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("profiles: delete %s: %w", name, err)
	}
	return nil
}

// resolve finds the on-disk file for name regardless of which format
// extension it was saved with.
func (m *Manager) resolve(name string) (string, error) {
	for _, ext := range []string{m.ext, ".yaml", ".yml", ".toml"} {
		path := filepath.Join(m.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("profiles: %q not found", name)
}
