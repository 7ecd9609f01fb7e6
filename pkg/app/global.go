package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/compile"
	"github.com/tinyland/devconsole/pkg/settings"
)

// applyGlobal performs the named action an Outcome{Kind: Global} requests.
// Only the router can do these: components describe them, they never
// reach into process/settings state directly.
func (m *AppModel) applyGlobal(a GlobalAction) (tea.Model, tea.Cmd) {
	switch a.Name {
	case "launch-compile":
		return m.launchTracked("compile")
	case "launch-upload":
		return m.launchPlain("upload")
	case "launch-monitor":
		return m.launchPlain("monitor")
	case "cancel-command":
		m.process.Quit(0)
		m.dash.CancelCommand()
		return m, nil
	default:
		return m, nil
	}
}

// toolCommand is one environment's argv for a build-system action
// (compile/upload/monitor), grounded in spec.md §6's "plain argv,
// line-buffered stdout/stderr, non-zero exit on failure" tool contract.
type toolCommand struct {
	name string
	args []string
}

// commandFor resolves the external tool invocation for action ("compile",
// "upload", or "monitor") under the settings' selected environment.
// Unrecognized environments fall back to the arduino-cli invocation,
// matching Settings.Default's Env.
func commandFor(env, action string, s settings.Settings) toolCommand {
	switch env {
	case "esp-idf":
		switch action {
		case "compile":
			return toolCommand{"idf.py", []string{"build"}}
		case "upload":
			return toolCommand{"idf.py", []string{"-p", s.Port, "flash"}}
		default:
			return toolCommand{"idf.py", []string{"-p", s.Port, "-b", fmt.Sprint(s.Baudrate), "monitor"}}
		}
	case "pmake":
		switch action {
		case "compile":
			return toolCommand{"pmake", []string{"build"}}
		case "upload":
			return toolCommand{"pmake", []string{"flash", "-p", s.Port}}
		default:
			return toolCommand{"pmake", []string{"monitor", "-p", s.Port}}
		}
	default:
		switch action {
		case "compile":
			return toolCommand{"arduino-cli", []string{"compile", "--fqbn", s.FQBN, s.SketchDirectory}}
		case "upload":
			return toolCommand{"arduino-cli", []string{"upload", "--fqbn", s.FQBN, "--port", s.Port, s.SketchDirectory}}
		default:
			return toolCommand{"arduino-cli", []string{"monitor", "--port", s.Port, "--config", fmt.Sprintf("baudrate=%d", s.Baudrate)}}
		}
	}
}

// launchTracked spawns a build-system action whose output drives the
// compile-progress state machine (only "compile" does today; upload and
// monitor have no stage/percent signal to parse).
func (m *AppModel) launchTracked(action string) (tea.Model, tea.Cmd) {
	s := m.settings.Get()
	if err := s.Validate(); err != nil {
		return m.applyOutcome(ToastOutcome(fmt.Sprintf("settings invalid: %v", err), 2))
	}

	cmd := commandFor(s.Env, action, s)
	label := cmd.name + " " + joinArgs(cmd.args)
	m.dash.SetProgressTracker(m.hist)

	parser := compile.NewParser(m.hist)
	_, err := m.process.Spawn(context.Background(), label, cmd.name, cmd.args, nil, s.SketchDirectory)
	if err != nil {
		return m.applyOutcome(ToastOutcome(fmt.Sprintf("launch failed: %v", err), 2))
	}

	go m.watchCompileOutput(parser)
	return m, nil
}

// launchPlain spawns a build-system action (upload/monitor) whose output
// streams straight into the dashboard without compile-stage parsing.
func (m *AppModel) launchPlain(action string) (tea.Model, tea.Cmd) {
	s := m.settings.Get()
	if err := s.Validate(); err != nil {
		return m.applyOutcome(ToastOutcome(fmt.Sprintf("settings invalid: %v", err), 2))
	}
	if s.Port == "" {
		return m.applyOutcome(ToastOutcome(fmt.Sprintf("%s requires a port", action), 1))
	}

	cmd := commandFor(s.Env, action, s)
	label := cmd.name + " " + joinArgs(cmd.args)
	_, err := m.process.Spawn(context.Background(), label, cmd.name, cmd.args, nil, s.SketchDirectory)
	if err != nil {
		return m.applyOutcome(ToastOutcome(fmt.Sprintf("launch failed: %v", err), 2))
	}
	return m, nil
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}

// watchCompileOutput mirrors newly appended dashboard output lines into
// the compile parser and back into the dashboard's stage/percent/file
// fields. It runs on its own goroutine and only calls the dashboard's
// own mutex-guarded setters, matching the "background threads mutate
// only the dashboard state" concurrency rule.
func (m *AppModel) watchCompileOutput(parser *compile.Parser) {
	seenTotal := 0
	for {
		<-m.dash.Wake()
		snap := m.dash.Snapshot()
		if !snap.IsRunning {
			return
		}

		// totalAppended counts every line ever appended, even those
		// since evicted from the ring; newCount is how many lines in
		// the current snapshot are unseen. If eviction outran us, we
		// simply resume from whatever survives in the ring rather than
		// re-feeding lines the parser already consumed.
		newCount := snap.TotalAppended - seenTotal
		if newCount > len(snap.OutputLines) {
			newCount = len(snap.OutputLines)
		}
		for _, line := range snap.OutputLines[len(snap.OutputLines)-newCount:] {
			parser.Feed(line)
		}
		seenTotal = snap.TotalAppended

		m.dash.SetStage(parser.State.Stage)
		m.dash.SetPercent(parser.State.Percent)
		m.dash.SetFile(parser.State.CurrentFile)

		if parser.State.Stage == compile.Complete || parser.State.Stage == compile.Failed {
			m.dash.Finish(parser.State.Stage)
			return
		}
	}
}
