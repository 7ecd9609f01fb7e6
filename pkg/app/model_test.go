package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/compile"
	"github.com/tinyland/devconsole/pkg/dashboard"
	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/process"
	"github.com/tinyland/devconsole/pkg/profiles"
	"github.com/tinyland/devconsole/pkg/registry"
	"github.com/tinyland/devconsole/pkg/settings"
)

// stubComponent is a minimal Component whose HandleEvent always returns a
// pre-programmed Outcome, for exercising the router in isolation.
type stubComponent struct {
	id      string
	outcome Outcome
	ticks   int
}

func (s *stubComponent) ID() string             { return s.id }
func (s *stubComponent) OnTick(time.Time)        { s.ticks++ }
func (s *stubComponent) HandleEvent(tea.Msg) Outcome { return s.outcome }
func (s *stubComponent) Render(area layout.Rect, reg *registry.Registry) string {
	reg.Register(s.id, registry.Rect{X: area.X, Y: area.Y, W: area.Width, H: area.Height})
	return s.id
}

func newTestModel(t *testing.T, base *stubComponent) *AppModel {
	t.Helper()
	sm, err := settings.Load(t.TempDir() + "/settings.yaml")
	if err != nil {
		t.Fatalf("settings.Load: %v", err)
	}
	pm := profiles.New(t.TempDir(), "")
	dash := dashboard.New()
	proc := process.New(dash, false)
	hist := &compile.History{}

	m := New(sm, pm, proc, dash, hist, base, 0)
	m.width, m.height = 80, 24
	return m
}

func TestWindowResizeInvalidatesCacheAndRegistry(t *testing.T) {
	base := &stubComponent{id: "base", outcome: ContinueOutcome()}
	m := newTestModel(t, base)
	m.reg.Register("stale", registry.Rect{X: 0, Y: 0, W: 1, H: 1})

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if _, ok := m.reg.Get("stale"); ok {
		t.Error("expected registry to be cleared on resize")
	}
	if m.width != 100 || m.height != 40 {
		t.Errorf("got %dx%d, want 100x40", m.width, m.height)
	}
}

func TestPushAndPopModal(t *testing.T) {
	base := &stubComponent{id: "base", outcome: ContinueOutcome()}
	m := newTestModel(t, base)

	modal := &stubComponent{id: "modal", outcome: ContinueOutcome()}
	m.applyOutcome(PushModalOutcome(modal))
	if m.focus.Top().ID() != "modal" {
		t.Fatalf("expected modal on top, got %s", m.focus.Top().ID())
	}

	m.applyOutcome(PopModalOutcome())
	if m.focus.Top().ID() != "base" {
		t.Fatalf("expected base on top after pop, got %s", m.focus.Top().ID())
	}
}

func TestBaseComponentCannotBePopped(t *testing.T) {
	base := &stubComponent{id: "base", outcome: ContinueOutcome()}
	m := newTestModel(t, base)

	m.applyOutcome(PopModalOutcome())
	if m.focus.Depth() != 1 {
		t.Errorf("expected base to survive pop, depth = %d", m.focus.Depth())
	}
}

func TestTooSmallBlocksInputExceptQuit(t *testing.T) {
	base := &stubComponent{id: "base", outcome: ContinueOutcome()}
	m := newTestModel(t, base)
	m.width, m.height = 10, 5

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	view := m.View()
	if view == "" {
		t.Fatal("expected an overlay view when too small")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("expected quit key to produce tea.Quit even when too small")
	}
}

func TestExitOutcomeQuits(t *testing.T) {
	base := &stubComponent{id: "base", outcome: ExitOutcome()}
	m := newTestModel(t, base)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !m.quitting {
		t.Error("expected quitting to be set")
	}
}
