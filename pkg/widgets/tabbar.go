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

// TabStyle selects the visual rendering of the tab bar; all variants are
// purely cosmetic, semantics are identical.
type TabStyle int

const (
	TabStyleUnderline TabStyle = iota
	TabStyleBoxed
)

// Tab is one labeled entry in a TabBar.
type Tab struct {
	ID    string
	Label string
}

// TabBar renders a row of labeled tabs with a selected index. It owns its
// own geometry and exposes hit-testing over its own rendered rect, per
// the component contract.
type TabBar struct {
	Name  string
	Tabs  []Tab
	Style TabStyle

	active int
	rects  []layout.Rect
}

// NewTabBar returns a TabBar with the first tab active.
func NewTabBar(name string, tabs []Tab) *TabBar {
	return &TabBar{Name: name, Tabs: tabs}
}

func (t *TabBar) ID() string      { return t.Name }
func (t *TabBar) OnTick(time.Time) {}

// Active returns the id of the currently selected tab.
func (t *TabBar) Active() string {
	if t.active < 0 || t.active >= len(t.Tabs) {
		return ""
	}
	return t.Tabs[t.active].ID
}

func (t *TabBar) HandleEvent(msg tea.Msg) app.Outcome {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left":
			t.move(-1)
			return app.GlobalOutcome("switch-tab", t.Active())
		case "right":
			t.move(1)
			return app.GlobalOutcome("switch-tab", t.Active())
		}

	case tea.MouseMsg:
		if msg.Type != tea.MouseLeft {
			return app.ContinueOutcome()
		}
		for i, r := range t.rects {
			if r.Contains(msg.X, msg.Y) {
				t.active = i
				return app.GlobalOutcome("switch-tab", t.Active())
			}
		}
	}
	return app.ContinueOutcome()
}

func (t *TabBar) move(delta int) {
	if len(t.Tabs) == 0 {
		return
	}
	t.active = ((t.active+delta)%len(t.Tabs) + len(t.Tabs)) % len(t.Tabs)
}

func (t *TabBar) Render(area layout.Rect, reg *registry.Registry) string {
	t.rects = t.rects[:0]

	line := ""
	under := ""
	x := area.X
	for i, tab := range t.Tabs {
		plain := " " + tab.Label + " "
		w := components.VisibleLen(plain)
		rect := layout.Rect{X: x, Y: area.Y, Width: w, Height: 1}
		t.rects = append(t.rects, rect)

		label := plain
		switch {
		case i == t.active && t.Style == TabStyleBoxed:
			label = components.Bold(components.Color(ColorAccent()) + "[" + tab.Label + "]" + components.Reset())
		case i == t.active:
			label = components.Bold(components.Color(ColorAccent()) + plain + components.Reset())
			under += components.Color(ColorAccent()) + repeatRune('-', w) + components.Reset()
		default:
			under += repeatRune(' ', w)
		}

		name := fmt.Sprintf("%s.tab.%d", t.Name, i)
		reg.Register(name, registry.Rect{X: rect.X, Y: rect.Y, W: rect.Width, H: rect.Height})
		line += reg.Mark(name, label)
		x += w
	}

	line = components.PadRight(line, area.Width)
	if t.Style != TabStyleUnderline || area.Height < 2 {
		return line
	}
	return line + "\n" + components.PadRight(under, area.Width)
}

func repeatRune(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
