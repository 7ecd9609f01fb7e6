package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/registry"
)

// centeredPanes holds the id of every tab whose content is a form rather
// than a dashboard view; per SPEC_FULL §4.3/§4.4 these render into a
// centered content area of the pane instead of filling it edge to edge.
var centeredPanes = map[string]bool{"settings": true}

// formWidthPercent and formHeightPercent size a centered pane's content
// area relative to the full pane.
const (
	formWidthPercent  = 80
	formHeightPercent = 80
)

// TabbedBase is the persistent root component: a tab bar plus one active
// pane per tab, per spec.md's "base component (a persistent TabBar +
// dashboard view) is never popped" rule. Only TabbedBase knows about the
// pane map, so it is the one place a tab bar's "switch-tab" Global
// outcome is actually applied; everything else about it is routed
// straight through like any other component.
type TabbedBase struct {
	tabBar Component
	panes  map[string]Component
	active string
	cache  *layout.LayoutCache
}

// NewTabbedBase returns a TabbedBase showing initialActive until the
// user switches tabs.
func NewTabbedBase(tabBar Component, panes map[string]Component, initialActive string) *TabbedBase {
	return &TabbedBase{tabBar: tabBar, panes: panes, active: initialActive, cache: layout.NewLayoutCache()}
}

func (b *TabbedBase) ID() string { return "base" }

func (b *TabbedBase) OnTick(now time.Time) {
	b.tabBar.OnTick(now)
	if pane := b.panes[b.active]; pane != nil {
		pane.OnTick(now)
	}
}

func (b *TabbedBase) HandleEvent(msg tea.Msg) Outcome {
	if outcome := b.tabBar.HandleEvent(msg); outcome.Kind == Global && outcome.Action.Name == "switch-tab" {
		if _, ok := b.panes[outcome.Action.Arg]; ok {
			b.active = outcome.Action.Arg
		}
		return ContinueOutcome()
	}

	pane := b.panes[b.active]
	if pane == nil {
		return ContinueOutcome()
	}
	return pane.HandleEvent(msg)
}

func (b *TabbedBase) Render(area layout.Rect, reg *registry.Registry) string {
	const tabBarHeight = 1
	rows := layout.SplitVertical(area, layout.Length{Value: tabBarHeight}, layout.Fill{Weight: 1})

	frame := b.tabBar.Render(rows[0], reg)
	pane := b.panes[b.active]
	if pane == nil {
		return frame
	}

	paneArea := rows[1]
	if !centeredPanes[b.active] {
		return frame + "\n" + pane.Render(paneArea, reg)
	}

	content := b.cache.CenteredCached(paneArea, formWidthPercent, formHeightPercent)
	rendered := pane.Render(content, reg)
	backdrop := blankCanvas(paneArea.Width, paneArea.Height)
	composited := overlayAt(backdrop, rendered, content.X-paneArea.X, content.Y-paneArea.Y)
	return frame + "\n" + composited
}
