package config

// LayoutPreset returns the tab list for a named preset. If the name is
// not recognized, the "default" preset is returned.
func LayoutPreset(name string) LayoutConfig {
	switch name {
	case "settings-first":
		return settingsFirstPreset()
	case "minimal":
		return minimalPreset()
	case "default":
		return defaultPreset()
	default:
		return defaultPreset()
	}
}

// defaultPreset shows the dashboard (scrollback + compile progress) then
// the settings form.
func defaultPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "default",
		Tabs: []TabConfig{
			{ID: "dashboard", Label: "Dashboard"},
			{ID: "settings", Label: "Settings"},
		},
	}
}

// settingsFirstPreset is the same two tabs in the opposite order, for
// workflows that spend most of their time configuring before a single
// long compile/monitor run.
func settingsFirstPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "settings-first",
		Tabs: []TabConfig{
			{ID: "settings", Label: "Settings"},
			{ID: "dashboard", Label: "Dashboard"},
		},
	}
}

// minimalPreset shows only the dashboard, for a read-only "watch the
// current run" view with no settings editing exposed.
func minimalPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "minimal",
		Tabs: []TabConfig{
			{ID: "dashboard", Label: "Dashboard"},
		},
	}
}
