package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/compile"
	"github.com/tinyland/devconsole/pkg/components"
	"github.com/tinyland/devconsole/pkg/dashboard"
	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/process"
	"github.com/tinyland/devconsole/pkg/profiles"
	"github.com/tinyland/devconsole/pkg/registry"
	"github.com/tinyland/devconsole/pkg/settings"
)

// MinWidth and MinHeight are the smallest terminal size the console will
// render a real frame for; below this, every component's input is
// blocked except quit and the view shows only an overlay.
const (
	MinWidth  = 60
	MinHeight = 16
)

// wakeMsg is delivered when the dashboard signals a background change
// (new output line, stage/percent/file update).
type wakeMsg struct{}

// dashboardWake returns a Cmd that blocks on the dashboard's wake channel
// and resolves to wakeMsg the moment background state changes.
func dashboardWake(dash *dashboard.State) tea.Cmd {
	return func() tea.Msg {
		<-dash.Wake()
		return wakeMsg{}
	}
}

// AppModel is the top-level owner of every long-lived subsystem and the
// single mutation point for UI state, per the runtime-shape expansion.
type AppModel struct {
	settings *settings.Manager
	profiles *profiles.Manager
	process  *process.Manager
	dash     *dashboard.State
	hist     *compile.History

	reg    *registry.Registry
	cache  *layout.LayoutCache
	focus  *FocusStack
	toast  *components.Toast

	width, height int
	quitting      bool
	killTimeout   time.Duration
}

// New wires together every subsystem and returns an AppModel ready to
// run under tea.NewProgram. base is the always-present root component
// (typically the tab bar + its active tab content). killTimeout bounds
// how long teardown waits for children to exit on quit; zero falls back
// to a 5s default.
func New(sm *settings.Manager, pm *profiles.Manager, proc *process.Manager, dash *dashboard.State, hist *compile.History, base Component, killTimeout time.Duration) *AppModel {
	if killTimeout <= 0 {
		killTimeout = 5 * time.Second
	}
	return &AppModel{
		settings:    sm,
		profiles:    pm,
		process:     proc,
		dash:        dash,
		hist:        hist,
		reg:         registry.New(),
		cache:       layout.NewLayoutCache(),
		focus:       NewFocusStack(base),
		killTimeout: killTimeout,
	}
}

// Init starts the dashboard-wake listener and the animation ticker
// alongside bubbletea's own init.
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(dashboardWake(m.dash), TickCmd())
}

// Update is the app's single mutation point. Per SPEC_FULL §4.12:
//  1. poll next event (bubbletea already does this for us);
//  2. resize invalidates the layout cache and clears stale registry entries;
//  3. key/mouse dispatches through the focus stack;
//  4. the returned outcome is applied;
//  5. every live component is ticked;
//  6. render happens in View, which is always a pure projection of state.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cache.Invalidate()
		m.reg.Clear()
		return m, nil

	case wakeMsg:
		return m, dashboardWake(m.dash)

	case tickMsg:
		m.tick(time.Time(msg))
		return m, TickCmd()

	case tea.KeyMsg, tea.MouseMsg:
		if m.tooSmall() {
			if k, ok := msg.(tea.KeyMsg); ok && isQuitKey(k) {
				return m.applyOutcome(ExitOutcome())
			}
			return m, nil
		}
		outcome := m.focus.Top().HandleEvent(msg)
		model, cmd := m.applyOutcome(outcome)
		return model, cmd
	}

	return m, nil
}

// tick drives OnTick across every live component. Update calls it on each
// tickMsg; Init starts the periodic TickCmd and Update re-arms it.
func (m *AppModel) tick(now time.Time) {
	for _, c := range m.focus.All() {
		c.OnTick(now)
	}
}

func isQuitKey(k tea.KeyMsg) bool {
	return k.String() == "q" || k.String() == "ctrl+c"
}

func (m *AppModel) tooSmall() bool {
	return m.width > 0 && (m.width < MinWidth || m.height < MinHeight)
}

// applyOutcome applies the router-level effect of a component's returned
// Outcome, per SPEC_FULL's focus-stack design note: handlers never hold
// more than one write lock, they just describe what should happen.
func (m *AppModel) applyOutcome(o Outcome) (tea.Model, tea.Cmd) {
	switch o.Kind {
	case Exit:
		m.quitting = true
		m.teardown()
		return m, tea.Quit

	case ShowToast:
		m.toast = &components.Toast{
			Message:  o.ToastMessage,
			Level:    components.ToastLevel(o.ToastLevel),
			Shown:    time.Now(),
			Duration: 3 * time.Second,
			FadeFor:  time.Second,
		}
		return m, nil

	case StateChanged:
		m.cache.Invalidate()
		return m, nil

	case PushModal:
		m.focus.Push(o.Modal)
		m.cache.Invalidate()
		return m, nil

	case PopModal:
		m.focus.Pop()
		m.cache.Invalidate()
		return m, nil

	case Global:
		return m.applyGlobal(o.Action)

	default:
		return m, nil
	}
}

// teardown cancels every running command and lets any pending settings
// write complete before the terminal guard is dropped, satisfying the
// "no child process remains, no settings write left half-open" invariant.
func (m *AppModel) teardown() {
	m.process.Quit(m.killTimeout)
}

// modalWidthPercent and modalHeightPercent size a pushed modal's content
// area relative to the full frame, per SPEC_FULL §4.6's centered-modal
// requirement; the backdrop behind it is dimmed via components.Dimmer.
const (
	modalWidthPercent  = 70
	modalHeightPercent = 70
	modalDimFactor     = 0.5
)

// View renders every component on the focus stack base-first, dimming the
// accumulated frame and compositing each subsequent modal centered over
// it, falling back to the terminal-too-small overlay. View never mutates
// AppModel; it is a pure projection, per the component-contract rule
// that render purity also binds the app router itself.
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.tooSmall() {
		return tooSmallOverlay(m.width, m.height)
	}

	area := layout.Rect{X: 0, Y: 0, Width: m.width, Height: m.height}
	stack := m.focus.All()

	frame := stack[0].Render(area, m.reg)
	for i := 1; i < len(stack); i++ {
		frame = components.Dimmer{Factor: modalDimFactor}.Apply(frame)

		modalArea := m.cache.CenteredCached(area, modalWidthPercent, modalHeightPercent)
		modalFrame := stack[i].Render(modalArea, m.reg)
		frame = overlayAt(frame, modalFrame, modalArea.X, modalArea.Y)
	}

	if m.toast != nil && m.toast.Visible(time.Now()) {
		frame += "\n" + m.toast.Render(time.Now())
	}

	return m.reg.Scan(frame)
}

func tooSmallOverlay(w, h int) string {
	return fmt.Sprintf("terminal too small (%dx%d, need at least %dx%d) — resize or press q to quit",
		w, h, MinWidth, MinHeight)
}
