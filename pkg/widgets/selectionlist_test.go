package widgets

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/app"
	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/registry"
)

func TestSelectionListNavigationWraps(t *testing.T) {
	l := NewSelectionList("boards", []string{"a", "b", "c"})
	l.HandleEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if l.hovered != 2 {
		t.Fatalf("expected wrap to last item, got hovered=%d", l.hovered)
	}
}

func TestSelectionListCommitOnEnter(t *testing.T) {
	l := NewSelectionList("boards", []string{"a", "b", "c"})
	l.HandleEvent(tea.KeyMsg{Type: tea.KeyDown})
	outcome := l.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})

	if outcome.Kind != app.Global || outcome.Action.Name != "selection-commit" {
		t.Fatalf("expected selection-commit outcome, got %+v", outcome)
	}
	if l.Selected() != 1 {
		t.Errorf("expected selected index 1, got %d", l.Selected())
	}
}

func TestSelectionListOnHighlightEmitsOnMove(t *testing.T) {
	l := NewSelectionList("boards", []string{"a", "b"})
	l.Mode = OnHighlight
	outcome := l.HandleEvent(tea.KeyMsg{Type: tea.KeyDown})
	if outcome.Kind != app.Global || outcome.Action.Name != "selection-highlight" {
		t.Fatalf("expected selection-highlight outcome, got %+v", outcome)
	}
}

func TestSelectionListClickCommits(t *testing.T) {
	l := NewSelectionList("boards", []string{"a", "b", "c"})
	l.Render(layout.Rect{X: 0, Y: 0, Width: 10, Height: 5}, registry.New())

	outcome := l.HandleEvent(tea.MouseMsg{X: 0, Y: 2, Type: tea.MouseLeft})
	if outcome.Kind != app.Global || l.Selected() != 2 {
		t.Fatalf("expected click on row 2 to commit index 2, got outcome=%+v selected=%d", outcome, l.Selected())
	}
}
