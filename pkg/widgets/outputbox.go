package widgets

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/app"
	"github.com/tinyland/devconsole/pkg/compile"
	"github.com/tinyland/devconsole/pkg/components"
	"github.com/tinyland/devconsole/pkg/dashboard"
	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/registry"
)

// OutputBox renders the dashboard's output_lines, windowed by scroll
// position and visible height, plus a compile-progress gauge and ETA
// when a command is running. The dashboard.State is the single owner of
// scroll_offset/autoscroll; the embedded viewport.Model only performs the
// line-wrapping and windowed render, per spec.md's OutputBox contract.
type OutputBox struct {
	Name string
	dash *dashboard.State
	hist *compile.History

	vp viewport.Model
}

// NewOutputBox returns an OutputBox bound to dash, optionally using hist
// for ETA estimation (nil disables the ETA line).
func NewOutputBox(name string, dash *dashboard.State, hist *compile.History) *OutputBox {
	return &OutputBox{Name: name, dash: dash, hist: hist, vp: viewport.New(0, 0)}
}

func (o *OutputBox) ID() string      { return o.Name }
func (o *OutputBox) OnTick(time.Time) {}

func (o *OutputBox) HandleEvent(msg tea.Msg) app.Outcome {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			o.dash.Scroll(-o.vp.Height)
		case "pgdown":
			o.dash.Scroll(o.vp.Height)
		case "c":
			return app.GlobalOutcome("launch-compile", "")
		case "u":
			return app.GlobalOutcome("launch-upload", "")
		case "m":
			return app.GlobalOutcome("launch-monitor", "")
		case "x":
			return app.GlobalOutcome("cancel-command", "")
		}

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			o.dash.Scroll(-3)
		case tea.MouseWheelDown:
			o.dash.Scroll(3)
		}
	}
	return app.ContinueOutcome()
}

func (o *OutputBox) Render(area layout.Rect, reg *registry.Registry) string {
	progress := o.renderProgress(area.Width)
	scrollArea := area
	if progress != "" && area.Height > 1 {
		scrollArea.Y++
		scrollArea.Height--
	}

	o.dash.SetVisibleHeight(scrollArea.Height)
	snap := o.dash.Snapshot()

	o.vp.Width = scrollArea.Width
	o.vp.Height = scrollArea.Height
	o.vp.SetContent(strings.Join(snap.OutputLines, "\n"))

	if snap.Autoscroll {
		o.vp.GotoBottom()
	} else {
		o.vp.SetYOffset(snap.ScrollOffset)
	}

	body := o.vp.View()
	name := o.Name + ".scrollback"
	reg.Register(name, registry.Rect{X: scrollArea.X, Y: scrollArea.Y, W: scrollArea.Width, H: scrollArea.Height})
	body = reg.Mark(name, body)

	if progress == "" || area.Height <= 1 {
		return body
	}
	return progress + "\n" + body
}

// renderProgress builds the one-row progress line that Render places above
// the scrollback: the compile gauge, stage and file, plus the ETA and a
// build-time sparkline from the compile-progress history while a run is
// active, or the last error when idle after a failure. Render shrinks the
// scrollback by one row whenever this line is non-empty.
func (o *OutputBox) renderProgress(width int) string {
	snap := o.dash.Snapshot()
	if !snap.IsRunning && snap.Compile.Stage == compile.Initializing {
		if snap.LastError != "" {
			return components.Truncate(components.Color(ColorError())+snap.LastError+components.Reset(), width)
		}
		return ""
	}

	gaugeWidth := width - 20
	if gaugeWidth < 5 {
		gaugeWidth = 5
	}
	g := components.NewGauge(components.DefaultGaugeStyle())
	bar := g.Render(snap.Compile.Percent, 100, gaugeWidth)

	line := bar + " " + snap.Compile.Stage.String()
	if snap.Compile.CurrentFile != "" {
		line += " " + snap.Compile.CurrentFile
	}

	if o.hist != nil && snap.IsRunning {
		eta := o.hist.ETA(snap.Compile, 0)
		line += "  ETA " + eta.Round(time.Second).String()

		if trend := o.hist.RecentDurationsSeconds(snap.Compile.Stage, 10); len(trend) > 1 {
			spark := components.NewSparkline(components.DefaultSparklineStyle())
			line += " " + spark.Render(trend, 10)
		}
	}
	return components.Truncate(line, width)
}
