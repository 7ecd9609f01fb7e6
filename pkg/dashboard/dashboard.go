// Package dashboard holds the single shared, mutex-protected view of a
// running command: its output ring buffer, scroll state, and compile
// progress. It is the one piece of state written by background process
// I/O pumps and read by the renderer; there is no secondary copy.
package dashboard

import (
	"sync"

	"github.com/tinyland/devconsole/pkg/compile"
)

// DefaultCapacity is the default bound on output_lines, per spec.
const DefaultCapacity = 1000

// State is the dashboard's single owned aggregate. Every method takes mu,
// so background goroutines may call any of them: the process manager's
// pumps and reaper call AppendOutput, SetRunning and SetError, and the
// compile-output watcher calls SetStage, SetPercent, SetFile and Finish.
type State struct {
	mu sync.Mutex

	isRunning      bool
	statusText     string
	lastError      string
	outputLines    []string
	capacity       int
	scrollOffset   int
	autoscroll     bool
	visibleHeight  int
	compile         compile.State
	progressTracker *compile.History
	totalAppended   int // monotonic count of every line ever appended, survives ring eviction

	// wake is signaled (non-blocking) whenever background state changes,
	// so the bubbletea bridge command can wake the Update loop without
	// polling.
	wake chan struct{}
}

// New returns an empty, autoscrolling dashboard with the default ring
// capacity.
func New() *State {
	return &State{
		capacity:   DefaultCapacity,
		autoscroll: true,
		wake:       make(chan struct{}, 1),
	}
}

// Wake returns the channel that receives a notification every time
// background state changes. Consumed by a tea.Cmd that blocks on it.
func (s *State) Wake() <-chan struct{} { return s.wake }

func (s *State) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// StartCommand atomically resets run state and records a synthetic
// "> label" output line marking the start of a new command.
func (s *State) StartCommand(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isRunning = true
	s.statusText = label
	s.lastError = ""
	s.compile = compile.State{}
	s.appendLocked("> " + label)
}

// SetError records a non-fatal run failure: a synthetic output line plus
// a sticky lastError surfaced by the renderer until the next
// StartCommand clears it. Never unwinds the calling goroutine.
func (s *State) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isRunning = false
	s.lastError = msg
	s.appendLocked("! " + msg)
	s.notify()
}

// CancelCommand marks the run as no longer active and records a
// synthetic terminator line. Any output already appended remains.
func (s *State) CancelCommand() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isRunning = false
	s.appendLocked("> canceled")
	s.notify()
}

// Finish marks the run complete (successfully or not) without discarding
// output, and records the final compile stage.
func (s *State) Finish(stage compile.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isRunning = false
	s.compile.Stage = stage
	s.notify()
}

// SetRunning marks whether a command is currently active, without
// touching compile stage. Used by the process manager when a spawned
// command that is not a compile run exits.
func (s *State) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isRunning = running
	s.notify()
}

// AppendOutput inserts line at the tail of the bounded ring, evicting
// from the head when at capacity, and advances scrollOffset only if
// autoscroll is engaged. Safe to call from a background pump goroutine.
func (s *State) AppendOutput(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(line)
	s.notify()
}

func (s *State) appendLocked(line string) {
	s.outputLines = append(s.outputLines, line)
	s.totalAppended++
	if over := len(s.outputLines) - s.capacity; over > 0 {
		// Evict from the head by reslicing; nothing is copied.
		s.outputLines = s.outputLines[over:]
	}
	if s.autoscroll {
		s.scrollOffset = s.maxScrollLocked()
	}
}

func (s *State) maxScrollLocked() int {
	max := len(s.outputLines) - s.visibleHeight
	if max < 0 {
		return 0
	}
	return max
}

// SetStage, SetPercent, and SetFile update compile progress. Called from
// the compile parser as it consumes the child's stdout.
func (s *State) SetStage(stage compile.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compile.Stage = stage
	s.notify()
}

func (s *State) SetPercent(pct float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compile.Percent = pct
	s.notify()
}

func (s *State) SetFile(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compile.CurrentFile = name
	s.notify()
}

// SetProgressTracker attaches the loaded ProgressHistory for ETA
// estimation during this run.
func (s *State) SetProgressTracker(h *compile.History) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progressTracker = h
}

// Scroll adjusts scrollOffset by delta lines (negative scrolls up,
// positive scrolls down), clamping to [0, max]. Disengages autoscroll
// unless the result lands exactly on the last line, in which case
// autoscroll re-engages.
func (s *State) Scroll(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := s.maxScrollLocked()
	next := s.scrollOffset + delta
	if next < 0 {
		next = 0
	}
	if next > max {
		next = max
	}
	s.scrollOffset = next
	s.autoscroll = next >= max
}

// SetVisibleHeight records the OutputBox's current viewport height, used
// to compute the scroll clamp and autoscroll re-engagement point.
func (s *State) SetVisibleHeight(h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h < 0 {
		h = 0
	}
	s.visibleHeight = h
	max := s.maxScrollLocked()
	if s.scrollOffset > max {
		s.scrollOffset = max
	}
}

// Snapshot is an immutable copy of dashboard state suitable for
// rendering without holding the lock across View().
type Snapshot struct {
	IsRunning     bool
	StatusText    string
	LastError     string
	OutputLines   []string
	TotalAppended int // for consumers that must not re-read lines they've already seen across ring eviction
	ScrollOffset  int
	Autoscroll    bool
	Compile       compile.State
}

// Snapshot copies out everything the renderer needs in one locked pass.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, len(s.outputLines))
	copy(lines, s.outputLines)

	return Snapshot{
		IsRunning:     s.isRunning,
		StatusText:    s.statusText,
		LastError:     s.lastError,
		OutputLines:   lines,
		TotalAppended: s.totalAppended,
		ScrollOffset:  s.scrollOffset,
		Autoscroll:    s.autoscroll,
		Compile:       s.compile,
	}
}
