package widgets

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/app"
	"github.com/tinyland/devconsole/pkg/components"
	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/registry"
)

// DispatchMode controls when SelectionList tells the router about cursor
// motion versus only on commit.
type DispatchMode int

const (
	// OnSelect emits an outcome only when an item is committed, via Enter
	// or a click.
	OnSelect DispatchMode = iota
	// OnHighlight additionally emits on every cursor move.
	OnHighlight
)

// SelectionList is an ordered list of labeled items with a selected and a
// hovered index. It does not render its own border; the caller wraps it.
// Navigation wraps when Wrap is set, otherwise clamps at the ends.
type SelectionList struct {
	Name  string
	Items []string
	Mode  DispatchMode
	Wrap  bool

	hovered  int
	selected int

	itemRects []layout.Rect
}

// NewSelectionList returns a SelectionList with wrapping navigation and
// OnSelect dispatch, the common case.
func NewSelectionList(name string, items []string) *SelectionList {
	return &SelectionList{Name: name, Items: items, Wrap: true}
}

func (l *SelectionList) ID() string      { return l.Name }
func (l *SelectionList) OnTick(time.Time) {}

// Selected returns the committed index (0 until the first commit), or -1
// when the list is empty.
func (l *SelectionList) Selected() int {
	if len(l.Items) == 0 {
		return -1
	}
	return l.selected
}

func (l *SelectionList) HandleEvent(msg tea.Msg) app.Outcome {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			l.move(-1)
			return l.afterMove()
		case "down", "j":
			l.move(1)
			return l.afterMove()
		case "enter":
			return l.commit()
		}

	case tea.MouseMsg:
		if msg.Type != tea.MouseLeft {
			return app.ContinueOutcome()
		}
		for i, r := range l.itemRects {
			if r.Contains(msg.X, msg.Y) {
				l.hovered = i
				return l.commit()
			}
		}
	}
	return app.ContinueOutcome()
}

func (l *SelectionList) afterMove() app.Outcome {
	if l.Mode == OnHighlight {
		return app.GlobalOutcome("selection-highlight", l.current())
	}
	return app.ContinueOutcome()
}

func (l *SelectionList) commit() app.Outcome {
	if len(l.Items) == 0 {
		return app.ContinueOutcome()
	}
	l.selected = l.hovered
	return app.GlobalOutcome("selection-commit", l.current())
}

func (l *SelectionList) current() string {
	if l.hovered < 0 || l.hovered >= len(l.Items) {
		return ""
	}
	return l.Items[l.hovered]
}

func (l *SelectionList) move(delta int) {
	if len(l.Items) == 0 {
		return
	}
	next := l.hovered + delta
	switch {
	case l.Wrap:
		next = ((next % len(l.Items)) + len(l.Items)) % len(l.Items)
	case next < 0:
		next = 0
	case next >= len(l.Items):
		next = len(l.Items) - 1
	}
	l.hovered = next
}

func (l *SelectionList) Render(area layout.Rect, reg *registry.Registry) string {
	l.itemRects = l.itemRects[:0]

	out := ""
	for i, item := range l.Items {
		rowArea := layout.Rect{X: area.X, Y: area.Y + i, Width: area.Width, Height: 1}
		l.itemRects = append(l.itemRects, rowArea)
		if i >= area.Height {
			continue
		}

		var line string
		switch {
		case i == l.selected && i == l.hovered:
			line = components.Bold(components.Color(ColorAccent())+"> "+item) + components.Reset()
		case i == l.hovered:
			line = "> " + item
		default:
			line = "  " + item
		}

		name := fmt.Sprintf("%s.item.%d", l.Name, i)
		reg.Register(name, registry.Rect{X: rowArea.X, Y: rowArea.Y, W: rowArea.Width, H: rowArea.Height})
		out += reg.Mark(name, line)
		if i < len(l.Items)-1 {
			out += "\n"
		}
	}
	return out
}
