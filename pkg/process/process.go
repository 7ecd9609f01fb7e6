// Package process owns spawned children: it starts them via os/exec (or
// an allocated pseudo-terminal when one is requested), pumps their
// stdout/stderr into the shared dashboard state, and guarantees native
// termination through the retained *os.Process handle rather than a
// shell-based kill.
package process

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tinyland/devconsole/pkg/dashboard"
)

// Handle is an owned child process: its id, its command line (for
// display), and the native handle needed to terminate it without
// shelling out.
type Handle struct {
	ID      uuid.UUID
	Label   string
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	done    chan struct{}
	waitErr error
}

// Wait blocks until the child has exited and returns its exit error, if
// any. Safe to call from multiple goroutines.
func (h *Handle) Wait() error {
	<-h.done
	return h.waitErr
}

// Manager tracks every live child process under one mutex. Handles are
// always looked up or removed by id; the manager never stores a bare pid.
type Manager struct {
	mu      sync.Mutex
	handles map[uuid.UUID]*Handle
	dash    *dashboard.State
	usePTY  bool
}

// New returns a process manager that streams child output into dash.
// usePTY requests pseudo-terminal allocation for children that need one
// (e.g. tools that detect interactivity before emitting progress bars).
func New(dash *dashboard.State, usePTY bool) *Manager {
	return &Manager{
		handles: make(map[uuid.UUID]*Handle),
		dash:    dash,
		usePTY:  usePTY,
	}
}

// Spawn starts name with args in cwd (with env appended to the current
// environment) and begins pumping its combined stdout/stderr into the
// dashboard, each line as it arrives. It returns immediately; Wait on
// the returned Handle (or the manager's Quit) to observe completion.
func (m *Manager) Spawn(ctx context.Context, label, name string, args, env []string, cwd string) (*Handle, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), env...)

	h := &Handle{ID: uuid.New(), Label: label, cmd: cmd, cancel: cancel, done: make(chan struct{})}

	m.dash.StartCommand(label)

	if m.usePTY {
		if err := m.spawnPTY(h); err != nil {
			cancel()
			m.dash.SetError(fmt.Sprintf("%s failed to start: %v", label, err))
			return nil, err
		}
	} else {
		if err := m.spawnPipes(h); err != nil {
			cancel()
			m.dash.SetError(fmt.Sprintf("%s failed to start: %v", label, err))
			return nil, err
		}
	}

	m.mu.Lock()
	m.handles[h.ID] = h
	m.mu.Unlock()

	go m.reap(h)

	return h, nil
}

func (m *Manager) spawnPipes(h *Handle) error {
	stdout, err := h.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("process: stdout pipe: %w", err)
	}
	stderr, err := h.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("process: stderr pipe: %w", err)
	}
	if err := h.cmd.Start(); err != nil {
		return fmt.Errorf("process: start %s: %w", h.cmd.Path, err)
	}

	var g errgroup.Group
	g.Go(func() error { return m.pump(stdout) })
	g.Go(func() error { return m.pump(stderr) })
	go func() {
		_ = g.Wait()
	}()
	return nil
}

// spawnPTY starts the child attached to a pseudo-terminal instead of
// plain pipes, for tools that behave differently when not connected to a
// tty (progress bars, color detection).
func (m *Manager) spawnPTY(h *Handle) error {
	f, err := pty.Start(h.cmd)
	if err != nil {
		return fmt.Errorf("process: pty start %s: %w", h.cmd.Path, err)
	}
	go func() {
		_ = m.pump(f)
		_ = f.Close()
	}()
	return nil
}

// pump reads lines from r and appends each to the dashboard. Ordering
// within a single stream is preserved; ordering across the two streams
// of one child is only "first to acquire the dashboard mutex", per the
// concurrency model.
func (m *Manager) pump(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		m.dash.AppendOutput(sc.Text())
	}
	return sc.Err()
}

func (m *Manager) reap(h *Handle) {
	err := h.cmd.Wait()
	h.waitErr = err
	close(h.done)

	m.mu.Lock()
	delete(m.handles, h.ID)
	m.mu.Unlock()

	m.dash.SetRunning(m.Running())

	if err != nil {
		slog.Warn("process exited with error", "label", h.Label, "err", err)
		m.dash.SetError(fmt.Sprintf("%s failed: %v", h.Label, err))
	}
}

// Kill terminates the child identified by id via its native process
// handle (never a shell "kill" command) and waits up to timeout for it
// to actually exit.
func (m *Manager) Kill(id uuid.UUID, timeout time.Duration) error {
	m.mu.Lock()
	h, ok := m.handles[id]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("process: no running handle %s", id)
	}

	h.cancel()
	if h.cmd.Process != nil {
		_ = h.cmd.Process.Kill()
	}

	select {
	case <-h.done:
	case <-time.After(timeout):
		return fmt.Errorf("process: %s did not exit within %s", id, timeout)
	}
	return nil
}

// Quit kills every running child and waits (bounded by timeout) for them
// all to exit, for use on application teardown.
func (m *Manager) Quit(timeout time.Duration) {
	m.mu.Lock()
	ids := make([]uuid.UUID, 0, len(m.handles))
	for id := range m.handles {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	deadline := time.Now().Add(timeout)
	for _, id := range ids {
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}
		_ = m.Kill(id, remaining)
	}
}

// Running reports whether any child is currently tracked.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles) > 0
}
