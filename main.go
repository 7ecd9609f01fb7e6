// dev-console is a terminal dashboard for ESP32-S3/Arduino firmware
// workflows: it drives arduino-cli, esp-idf, or pmake compile/upload/
// monitor commands, tracks compile progress against a rolling per-sketch
// history, and exposes the build settings and scrollback through a
// single Bubbletea TUI.
//
// Usage:
//
//	dev-console [flags]
//
// Flags:
//
//	-config string    Path to structural config file (default: $XDG_CONFIG_HOME/dev-console/config.yaml)
//	-settings string  Path to settings file (default: $XDG_CONFIG_HOME/dev-console/settings.yaml)
//	-profiles-dir string Directory of saved settings profiles
//	-pty              Run child processes under a pty instead of plain pipes
//	-verbose          Enable debug logging
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tinyland/devconsole/pkg/app"
	"github.com/tinyland/devconsole/pkg/compile"
	"github.com/tinyland/devconsole/pkg/config"
	"github.com/tinyland/devconsole/pkg/dashboard"
	"github.com/tinyland/devconsole/pkg/driver"
	"github.com/tinyland/devconsole/pkg/process"
	"github.com/tinyland/devconsole/pkg/profiles"
	"github.com/tinyland/devconsole/pkg/settings"
	"github.com/tinyland/devconsole/pkg/theme"
	"github.com/tinyland/devconsole/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to structural config file")
		settingsPath = flag.String("settings", "", "Path to settings file")
		profilesDir  = flag.String("profiles-dir", "", "Directory of saved settings profiles")
		usePTY       = flag.Bool("pty", false, "Run child processes under a pty instead of plain pipes")
		verbose      = flag.Bool("verbose", false, "Enable debug logging")
		showVersion  = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("dev-console %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	theme.SetCurrent(cfg.Theme.Name)

	if *settingsPath == "" {
		home, _ := os.UserHomeDir()
		*settingsPath = filepath.Join(xdgConfigHome(home), "dev-console", "settings.yaml")
	}
	sm, err := settings.Load(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}

	if *profilesDir == "" {
		*profilesDir = profiles.DefaultDir()
	}
	pm := profiles.New(*profilesDir, "")

	dash := dashboard.New()
	proc := process.New(dash, *usePTY)

	s := sm.Get()
	histPath := compile.HistoryPath(filepath.Dir(*settingsPath), s.SketchName)
	hist, err := compile.LoadHistory(histPath)
	if err != nil {
		logger.Warn("failed to load compile history, starting fresh", "error", err)
		hist = &compile.History{}
	}

	base := buildBase(cfg, sm, pm, dash, hist)
	model := app.New(sm, pm, proc, dash, hist, base, cfg.General.KillTimeout.Duration)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := driver.NegotiateCapabilities(driver.Options{
		AltScreen: cfg.Terminal.AltScreen,
		Mouse:     cfg.Terminal.Mouse,
	})
	if err := driver.Run(ctx, model, opts); err != nil {
		logger.Error("dev-console exited with error", "error", err)
		os.Exit(1)
	}
}

// buildBase assembles the persistent root component from the configured
// layout preset: a tab bar plus one pane per tab, wiring "dashboard" to
// the scrollback/compile-progress view and "settings" to the build form.
func buildBase(cfg *config.Config, sm *settings.Manager, pm *profiles.Manager, dash *dashboard.State, hist *compile.History) *app.TabbedBase {
	layoutCfg := cfg.Layout
	if layoutCfg.Preset != "custom" || len(layoutCfg.Tabs) == 0 {
		layoutCfg = config.LayoutPreset(layoutCfg.Preset)
	}

	tabs := make([]widgets.Tab, 0, len(layoutCfg.Tabs))
	panes := make(map[string]app.Component, len(layoutCfg.Tabs))
	for _, t := range layoutCfg.Tabs {
		tabs = append(tabs, widgets.Tab{ID: t.ID, Label: t.Label})
		switch t.ID {
		case "settings":
			panes[t.ID] = widgets.NewFieldEditor(t.ID, sm, pm)
		default:
			panes[t.ID] = widgets.NewOutputBox(t.ID, dash, hist)
		}
	}

	initialActive := "dashboard"
	if len(tabs) > 0 {
		initialActive = tabs[0].ID
	}

	tabBar := widgets.NewTabBar("tabs", tabs)
	return app.NewTabbedBase(tabBar, panes, initialActive)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// setupLogging mirrors pkg/driver's expectation that the terminal stays
// clean: logs go only to a file, never to stderr, since stderr shares
// the screen with the running TUI.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, *os.File, error) {
	level := slog.LevelInfo
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	var w io.Writer = logFile
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, logFile, nil
}

func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
