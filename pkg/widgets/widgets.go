// Package widgets provides the concrete stateful widgets of the dev
// console: SelectionList, FieldEditor, TabBar, OutputBox, and FileBrowser.
// Each implements app.Component: its Render is a pure projection of
// current state into an area, and input is processed by HandleEvent,
// which returns an app.Outcome describing what the router should do
// rather than mutating shared state directly.
package widgets

import "github.com/tinyland/devconsole/pkg/theme"

// Color accessors read the active theme on every call rather than caching
// hex strings, so a runtime theme.SetCurrent takes effect on the next frame.
func ColorBorderFocus() string { return theme.Current.BorderFocus }
func ColorAccent() string        { return theme.Current.Accent }
func ColorDim() string           { return theme.Current.Dim }
func ColorError() string         { return theme.Current.StatusError }
