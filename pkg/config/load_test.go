package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigHasSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout.Preset != "default" {
		t.Errorf("Layout.Preset = %q, want %q", cfg.Layout.Preset, "default")
	}
	if cfg.Theme.Name != "default" {
		t.Errorf("Theme.Name = %q, want %q", cfg.Theme.Name, "default")
	}
	if !cfg.Terminal.AltScreen || !cfg.Terminal.Mouse {
		t.Error("expected AltScreen and Mouse both enabled by default")
	}
	if cfg.General.KillTimeout.Duration != 5*time.Second {
		t.Errorf("KillTimeout = %v, want 5s", cfg.General.KillTimeout.Duration)
	}
	if len(cfg.Keybindings) != len(DefaultKeybindings()) {
		t.Errorf("Keybindings has %d entries, want %d", len(cfg.Keybindings), len(DefaultKeybindings()))
	}
}

func TestLoadFromReaderYAML(t *testing.T) {
	const doc = `
general:
  log_level: debug
  kill_timeout: 10s
layout:
  preset: minimal
theme:
  name: dracula
keybindings:
  quit: ctrl+c
`
	cfg, err := LoadFromReader(strings.NewReader(doc), false)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.General.LogLevel, "debug")
	}
	if cfg.General.KillTimeout.Duration != 10*time.Second {
		t.Errorf("KillTimeout = %v, want 10s", cfg.General.KillTimeout.Duration)
	}
	if cfg.Layout.Preset != "minimal" {
		t.Errorf("Layout.Preset = %q, want %q", cfg.Layout.Preset, "minimal")
	}
	if cfg.Theme.Name != "dracula" {
		t.Errorf("Theme.Name = %q, want %q", cfg.Theme.Name, "dracula")
	}
	if cfg.Keybindings["quit"] != "ctrl+c" {
		t.Errorf("Keybindings[quit] = %q, want %q", cfg.Keybindings["quit"], "ctrl+c")
	}
}

func TestLoadFromReaderTOML(t *testing.T) {
	const doc = `
[general]
log_level = "warn"
kill_timeout = "2s"

[layout]
preset = "settings-first"
`
	cfg, err := LoadFromReader(strings.NewReader(doc), true)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.General.LogLevel, "warn")
	}
	if cfg.General.KillTimeout.Duration != 2*time.Second {
		t.Errorf("KillTimeout = %v, want 2s", cfg.General.KillTimeout.Duration)
	}
	if cfg.Layout.Preset != "settings-first" {
		t.Errorf("Layout.Preset = %q, want %q", cfg.Layout.Preset, "settings-first")
	}
}

func TestLoadFromReaderDropsUnknownKeybindingAction(t *testing.T) {
	const doc = `
keybindings:
  quit: q
  launch-teleport: t
`
	cfg, err := LoadFromReader(strings.NewReader(doc), false)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if _, ok := cfg.Keybindings["launch-teleport"]; ok {
		t.Error("expected unknown action 'launch-teleport' to be dropped")
	}
	if cfg.Keybindings["quit"] != "q" {
		t.Errorf("Keybindings[quit] = %q, want %q", cfg.Keybindings["quit"], "q")
	}
}

func TestLoadFromReaderRejectsMalformedYAML(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("general: [this is not a mapping"), false)
	if err == nil {
		t.Fatal("expected an error for malformed yaml, got nil")
	}
}

func TestLayoutPresetKnownNames(t *testing.T) {
	cases := map[string][]string{
		"default":        {"dashboard", "settings"},
		"settings-first": {"settings", "dashboard"},
		"minimal":        {"dashboard"},
	}
	for name, wantIDs := range cases {
		preset := LayoutPreset(name)
		if len(preset.Tabs) != len(wantIDs) {
			t.Errorf("preset %q: got %d tabs, want %d", name, len(preset.Tabs), len(wantIDs))
			continue
		}
		for i, id := range wantIDs {
			if preset.Tabs[i].ID != id {
				t.Errorf("preset %q tab[%d] = %q, want %q", name, i, preset.Tabs[i].ID, id)
			}
		}
	}
}

func TestLayoutPresetUnknownNameFallsBackToDefault(t *testing.T) {
	preset := LayoutPreset("nonexistent")
	if preset.Preset != "default" {
		t.Errorf("unknown preset fell back to %q, want %q", preset.Preset, "default")
	}
}

func TestDurationRoundTripsThroughYAMLAndTOML(t *testing.T) {
	d := Duration{3 * time.Second}

	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var viaText Duration
	if err := viaText.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if viaText.Duration != d.Duration {
		t.Errorf("text round-trip = %v, want %v", viaText.Duration, d.Duration)
	}

	yamlVal, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	var viaYAML Duration
	if err := viaYAML.UnmarshalYAML(func(out interface{}) error {
		*(out.(*string)) = yamlVal.(string)
		return nil
	}); err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	if viaYAML.Duration != d.Duration {
		t.Errorf("yaml round-trip = %v, want %v", viaYAML.Duration, d.Duration)
	}
}
