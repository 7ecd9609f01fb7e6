// Package app is the top-level owner of the dev console: settings
// manager, component manager with focus stack, process manager,
// dashboard state. It implements the Elm-architecture event loop described
// in the runtime shape expansion — one AppModel, one Update, background
// work flowing back in as tea.Msg values.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/registry"
)

// Component is the contract every stateful widget implements: selection
// list, field editor, tab bar, output box, file browser, and any modal.
// Render is strictly a projection of state — no component may mutate
// itself inside Render; anything time-dependent comes in through OnTick.
type Component interface {
	// ID returns the component's stable identifier, used by the focus
	// stack and by rect-registry names.
	ID() string

	// OnTick advances any time-driven internal state (toast fade, ETA
	// recompute). now is supplied by the caller; components must never
	// read the wall clock themselves, so Render stays a pure projection.
	OnTick(now time.Time)

	// HandleEvent processes one input event and returns an Outcome
	// describing what the router should do. A component never mutates
	// global state directly; it returns what it wants to happen.
	HandleEvent(msg tea.Msg) Outcome

	// Render projects the component's current state into area, using reg
	// to register every interactive element's on-screen rect under a
	// stable name before returning.
	Render(area layout.Rect, reg *registry.Registry) string
}

// ConfigLoader is implemented by components that accept a per-component
// default configuration file, loaded once at startup.
type ConfigLoader interface {
	LoadConfig(path string) error
}

// OutcomeKind selects which field of Outcome is meaningful.
type OutcomeKind int

const (
	// Continue means the component handled the event; no app-level
	// action is needed.
	Continue OutcomeKind = iota
	// Exit requests application shutdown (the "quit" outcome): cancel
	// running commands, persist pending settings, drop the terminal.
	Exit
	// ShowToast requests a transient notification.
	ShowToast
	// StateChanged signals that structural layout-relevant state changed
	// (e.g. a modal opened), so the layout cache should be invalidated.
	StateChanged
	// PushModal requests the router push a new component onto the focus
	// stack, making it the sole input target until it pops itself.
	PushModal
	// PopModal requests the router pop the current top of the focus
	// stack, returning input to whatever is beneath it.
	PopModal
	// Global carries an application-level action (launch command, switch
	// tab) that only the router, not the component, can perform.
	Global
)

// Outcome is the value every Component.HandleEvent call returns. The
// router applies it; no handler ever holds more than one outcome's worth
// of effect at a time.
type Outcome struct {
	Kind OutcomeKind

	ToastMessage string
	ToastLevel   int // a components.ToastLevel value, stored as a plain int

	Modal Component // for PushModal

	Action GlobalAction
}

// GlobalAction is the payload of a Global outcome.
type GlobalAction struct {
	Name string // "switch-tab", "launch-compile", "launch-upload", "launch-monitor", "cancel-command"
	Arg  string
}

// ContinueOutcome is the zero-effort outcome most event handling returns.
func ContinueOutcome() Outcome { return Outcome{Kind: Continue} }

// ExitOutcome requests application shutdown.
func ExitOutcome() Outcome { return Outcome{Kind: Exit} }

// ToastOutcome requests a transient notification at the given level.
func ToastOutcome(message string, level int) Outcome {
	return Outcome{Kind: ShowToast, ToastMessage: message, ToastLevel: level}
}

// PushModalOutcome requests the router push modal onto the focus stack.
func PushModalOutcome(modal Component) Outcome {
	return Outcome{Kind: PushModal, Modal: modal}
}

// PopModalOutcome requests the router pop the top of the focus stack.
func PopModalOutcome() Outcome { return Outcome{Kind: PopModal} }

// GlobalOutcome requests the router perform a named global action.
func GlobalOutcome(name, arg string) Outcome {
	return Outcome{Kind: Global, Action: GlobalAction{Name: name, Arg: arg}}
}
