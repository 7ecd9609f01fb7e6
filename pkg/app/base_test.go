package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/registry"
)

// stubTabBar mimics the real widgets.TabBar: it only emits a switch-tab
// outcome for a right-arrow key, and otherwise passes through, so tests
// can exercise both TabbedBase branches.
type stubTabBar struct {
	next string
}

func (s *stubTabBar) ID() string      { return "tabbar" }
func (s *stubTabBar) OnTick(time.Time) {}
func (s *stubTabBar) HandleEvent(msg tea.Msg) Outcome {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRight {
		return GlobalOutcome("switch-tab", s.next)
	}
	return ContinueOutcome()
}
func (s *stubTabBar) Render(layout.Rect, *registry.Registry) string { return "tabs" }

func TestTabbedBaseSwitchesActivePane(t *testing.T) {
	dash := &stubComponent{id: "dash", outcome: ContinueOutcome()}
	settingsPane := &stubComponent{id: "settings", outcome: ContinueOutcome()}
	tabBar := &stubTabBar{next: "settings"}

	base := NewTabbedBase(tabBar, map[string]Component{"dash": dash, "settings": settingsPane}, "dash")
	base.HandleEvent(tea.KeyMsg{Type: tea.KeyRight})

	if base.active != "settings" {
		t.Fatalf("expected active=settings, got %s", base.active)
	}
}

func TestTabbedBaseRoutesToActivePaneWhenNotSwitching(t *testing.T) {
	dash := &stubComponent{id: "dash", outcome: ExitOutcome()}
	tabBar := &stubTabBar{next: ""} // the stub only switches on KeyRight, so KeyEnter reaches the active pane

	base := NewTabbedBase(tabBar, map[string]Component{"dash": dash}, "dash")
	outcome := base.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})

	if outcome.Kind != Exit {
		t.Fatalf("expected the active pane's outcome to pass through, got %+v", outcome)
	}
}
