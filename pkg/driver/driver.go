// Package driver acquires the terminal (raw mode, alternate screen,
// mouse capture), runs the bubbletea program, and guarantees teardown on
// every exit path, including an interrupting signal or a panic.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/terminal"
	"github.com/tinyland/devconsole/pkg/theme"
)

// Options configures how the terminal is acquired.
type Options struct {
	AltScreen bool // default true
	Mouse     bool // default true
}

// DefaultOptions returns alternate screen + mouse capture enabled, the
// configuration every interactive run should use.
func DefaultOptions() Options {
	return Options{AltScreen: true, Mouse: true}
}

// NegotiateCapabilities detects the attached terminal's mouse and color
// support and narrows opts and the active theme to match: mouse capture
// is dropped if the terminal doesn't report SGR mouse support, and the
// active theme's colors are quantized to 256-color codes on anything
// short of true color.
func NegotiateCapabilities(opts Options) Options {
	caps := terminal.DetectCapabilities()
	if opts.Mouse && !caps.MouseSGR {
		opts.Mouse = false
	}
	depth := 8
	if caps.TrueColor {
		depth = 24
	}
	theme.Current = theme.Adapt(theme.Current, depth)
	return opts
}

// Run acquires the terminal, starts model under a bubbletea program, and
// restores the terminal unconditionally on return — including when model
// panics. A SIGINT/SIGTERM is translated into a tea.Quit so the app's own
// teardown path (canceling children, persisting settings) still runs,
// rather than the process dying mid-frame with raw mode left engaged.
func Run(ctx context.Context, model tea.Model, opts Options) (err error) {
	teaOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		teaOpts = append(teaOpts, tea.WithAltScreen())
	}
	if opts.Mouse {
		teaOpts = append(teaOpts, tea.WithMouseCellMotion())
	}
	// Key-release events are spurious on some platforms; bubbletea only
	// reports key-press by default, which already matches the contract.
	teaOpts = append(teaOpts, tea.WithFilter(filterKeyReleases))

	p := tea.NewProgram(model, teaOpts...)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			slog.Info("driver: received shutdown signal")
			p.Quit()
		case <-ctx.Done():
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("driver: panic in program: %v", r)
		}
	}()

	if _, runErr := p.Run(); runErr != nil {
		return fmt.Errorf("driver: program exited with error: %w", runErr)
	}
	return nil
}

// filterKeyReleases drops key-release messages. Key releases are only
// ever emitted if the app opts into tea.WithKeyReleases; this app never
// does, but the filter stays in place so a future enhancement request
// can't silently leak release events into handlers that only expect
// presses.
func filterKeyReleases(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.KeyReleaseMsg); ok {
		return nil
	}
	return msg
}
