// Package compile implements the compile-output state machine: stage
// tracking from a build tool's stdout, progress estimation, and a
// persisted rolling history used to compute an ETA.
package compile

import "fmt"

// Stage is one element of the compile pipeline's totally ordered
// sequence. Stages only ever advance within a single run; Failed may be
// reached from any non-terminal stage.
type Stage int

const (
	Initializing Stage = iota
	Compiling
	Linking
	Generating
	Complete
	Failed
)

func (s Stage) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Compiling:
		return "compiling"
	case Linking:
		return "linking"
	case Generating:
		return "generating"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// order gives every stage except Failed its rank for the monotonic-advance
// check, with Complete ranked last; Failed is reachable from anywhere and
// carries no rank.
var order = map[Stage]int{
	Initializing: 0,
	Compiling:    1,
	Linking:      2,
	Generating:   3,
	Complete:     4,
}

// defaultWeights are the fixed stage weights summing to 100, used when no
// History is available to derive historical weights from.
var defaultWeights = map[Stage]float64{
	Initializing: 5,
	Compiling:    60,
	Linking:      20,
	Generating:   15,
}

// State is the compile run's current stage, per-stage progress, and
// overall weighted percent.
type State struct {
	Stage       Stage
	Percent     float64 // 0.0-100.0, overall weighted progress
	StagePct    float64 // 0.0-100.0, progress within Stage
	CurrentFile string
	FilesDone   int
	FilesTotal  int
}

// Advance moves the state machine to next, applying the monotonic-advance
// invariant: a transition to an earlier-ranked stage than the current one
// is ignored, except that Failed is always accepted. Returns whether the
// transition was applied.
func (st *State) Advance(next Stage) bool {
	if next == Failed {
		st.Stage = Failed
		return true
	}
	if st.Stage == Failed || st.Stage == Complete {
		return false
	}
	if order[next] <= order[st.Stage] {
		return false
	}
	st.Stage = next
	st.StagePct = 0
	return true
}

// weights returns per-stage weights, preferring hist's historical average
// durations (normalized to sum to 100) when available.
func weights(hist *History) map[Stage]float64 {
	if hist == nil {
		return defaultWeights
	}
	return hist.weights()
}

// Overall recomputes Percent as the stage-weighted blend: stages fully
// before the current one contribute their whole weight, the current
// stage contributes weight*StagePct/100, later stages contribute zero.
func (st *State) Overall(hist *History) {
	w := weights(hist)
	var pct float64
	for _, stage := range []Stage{Initializing, Compiling, Linking, Generating} {
		switch {
		case order[stage] < order[st.Stage]:
			pct += w[stage]
		case stage == st.Stage:
			pct += w[stage] * st.StagePct / 100
		}
	}
	if st.Stage == Complete {
		pct = 100
	}
	st.Percent = pct
}
