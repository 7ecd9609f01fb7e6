// Package registry implements the rect registry (the "HWND" map): a
// named store of last-rendered rectangles consulted by mouse dispatch,
// wired to github.com/lrstanley/bubblezone for the actual mark/scan
// mechanics bubbletea views need, plus a plain name->Rect index used by
// hit-testing and by tests that don't want to round-trip a rendered
// frame through ANSI markers.
package registry

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Rect is an axis-aligned screen rectangle in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Registry is the per-frame rect registry. Register is idempotent
// (update-if-present, insert-otherwise); the most recently registered
// entry wins ties in HitTest, matching the "last rendered on top" rule
// real terminal UIs follow.
type Registry struct {
	zones *zone.Manager

	rects map[string]Rect
	order []string // insertion order; re-registering moves a name to the end
}

// New returns an empty registry backed by a fresh bubblezone manager.
func New() *Registry {
	return &Registry{
		zones: zone.New(),
		rects: make(map[string]Rect),
	}
}

// Mark wraps content with a bubblezone marker so a subsequent Scan over
// the fully rendered frame can recover its on-screen position. Call this
// at render time for every interactive element, before Register.
func (r *Registry) Mark(name, content string) string {
	return r.zones.Mark(name, content)
}

// Scan processes one fully rendered frame, resolving every bubblezone
// marker's screen position for the current frame. Call once per render,
// after every Mark call for that frame has been composed into the
// output.
func (r *Registry) Scan(frame string) string {
	return r.zones.Scan(frame)
}

// ZoneInBounds reports whether a bubbletea mouse event landed inside the
// bubblezone-marked element named name, for elements whose geometry came
// from Mark/Scan rather than explicit layout math.
func (r *Registry) ZoneInBounds(name string, m tea.MouseMsg) bool {
	z := r.zones.Get(name)
	return z != nil && z.InBounds(m)
}

// Register records rect under name directly, for elements positioned by
// explicit layout math rather than bubblezone marker scanning.
func (r *Registry) Register(name string, rect Rect) {
	r.registerLocked(name, rect)
}

func (r *Registry) registerLocked(name string, rect Rect) {
	if _, exists := r.rects[name]; exists {
		for i, n := range r.order {
			if n == name {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.order = append(r.order, name)
	r.rects[name] = rect
}

// Get returns the rect last registered under name.
func (r *Registry) Get(name string) (Rect, bool) {
	rect, ok := r.rects[name]
	return rect, ok
}

// HitTest returns the name of the most recently registered rect
// containing (x, y), or "" if none does.
func (r *Registry) HitTest(x, y int) (string, bool) {
	for i := len(r.order) - 1; i >= 0; i-- {
		name := r.order[i]
		if rect, ok := r.rects[name]; ok && rect.Contains(x, y) {
			return name, true
		}
	}
	return "", false
}

// Clear drops every entry, for use between structurally different
// screens (e.g. entering or leaving a modal) where stale names should
// never accidentally hit-test positive.
func (r *Registry) Clear() {
	r.rects = make(map[string]Rect)
	r.order = nil
}

// MouseHit resolves a bubbletea mouse event directly against the
// registry, for callers that already have a tea.MouseMsg in hand.
func (r *Registry) MouseHit(m tea.MouseMsg) (string, bool) {
	return r.HitTest(m.X, m.Y)
}
