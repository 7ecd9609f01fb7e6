package widgets

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/app"
	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/registry"
)

func TestTabBarRightAdvancesAndWraps(t *testing.T) {
	tb := NewTabBar("tabs", []Tab{{ID: "dash"}, {ID: "settings"}})

	outcome := tb.HandleEvent(tea.KeyMsg{Type: tea.KeyRight})
	if outcome.Action.Arg != "settings" {
		t.Fatalf("expected active=settings after right, got %q", outcome.Action.Arg)
	}

	outcome = tb.HandleEvent(tea.KeyMsg{Type: tea.KeyRight})
	if outcome.Action.Arg != "dash" {
		t.Fatalf("expected wrap to dash, got %q", outcome.Action.Arg)
	}
}

func TestTabBarClickSelectsTab(t *testing.T) {
	tb := NewTabBar("tabs", []Tab{{ID: "dash", Label: "Dash"}, {ID: "settings", Label: "Settings"}})
	tb.Render(layout.Rect{X: 0, Y: 0, Width: 40, Height: 1}, registry.New())

	// "Settings" tab starts right after " Dash " (6 cols).
	outcome := tb.HandleEvent(tea.MouseMsg{X: 8, Y: 0, Type: tea.MouseLeft})
	if outcome.Kind != app.Global || tb.Active() != "settings" {
		t.Fatalf("expected click to select settings tab, got active=%q outcome=%+v", tb.Active(), outcome)
	}
}
