package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Manager is the single owner of the live Settings value. All reads go
// through Get (which returns a clone), and all writes go through Update,
// which applies a closure under lock, persists the result, and only then
// releases the lock. No caller ever observes a half-applied record.
type Manager struct {
	mu      sync.Mutex
	current Settings
	path    string
}

// Load reads path (if present) and returns a ready Manager. A missing
// file is not an error: the manager starts from Default() and the caller
// is expected to surface a "using defaults" toast. A corrupt file also
// falls back to defaults, with the parse error returned so the caller can
// warn without treating it as fatal.
func Load(path string) (*Manager, error) {
	m := &Manager{path: path, current: Default()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, fmt.Errorf("settings: read %s: %w", path, err)
	}

	var loaded Settings
	if err := decode(path, data, &loaded); err != nil {
		return m, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if loaded.Baudrate == 0 {
		loaded.Baudrate = DefaultBaudrate
	}
	m.current = loaded
	return m, nil
}

// Get returns a deep copy of the current settings. Safe for concurrent
// callers; the returned value is always the latest successfully applied
// (or loaded) record.
func (m *Manager) Get() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// Update applies fn to a copy of the current settings, validates the
// result, persists it, and — only on successful persistence — commits it
// as the new in-memory value. On a persistence failure the in-memory
// state is intentionally left as it was before the call (not rolled back
// to some third state, simply never advanced); the caller sees the error
// and is responsible for surfacing it (see DESIGN.md Open Questions).
func (m *Manager) Update(fn func(*Settings)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.current.Clone()
	fn(&next)

	if err := next.Validate(); err != nil {
		return err
	}
	if next.equal(m.current) {
		// No observable change: skip the disk write entirely so that
		// update(f); update(identity) persists exactly once.
		return nil
	}

	data, err := encode(m.path, next)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := atomicWrite(m.path, data); err != nil {
		return err
	}

	m.current = next
	return nil
}

// Reload discards the in-memory value and re-reads path from disk,
// overwriting current state. Used after an external edit to the file.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.current = Default()
			return nil
		}
		return fmt.Errorf("settings: reload %s: %w", m.path, err)
	}

	var loaded Settings
	if err := decode(m.path, data, &loaded); err != nil {
		return fmt.Errorf("settings: reload parse %s: %w", m.path, err)
	}
	m.current = loaded
	return nil
}

// Path returns the file path settings are persisted to.
func (m *Manager) Path() string { return m.path }

// DefaultPath returns the platform-conventional settings file path,
// $XDG_CONFIG_HOME/dev-console/settings.yaml (or ~/.config/... as the
// XDG fallback).
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dev-console", "settings.yaml")
}
