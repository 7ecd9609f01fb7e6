package compile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// maxPerStage and maxTotal bound the rolling window kept per sketch:
// at most 10 samples per stage, 20 samples overall (oldest evicted
// first), per the data model.
const (
	maxPerStage = 10
	maxTotal    = 20
)

// sample is one observed stage duration from a completed run.
type sample struct {
	Stage    Stage         `json:"stage"`
	Duration time.Duration `json:"duration_ns"`
}

// History is the persisted per-sketch rolling window of stage durations,
// used to derive stage weights and an ETA estimate.
type History struct {
	path    string
	samples []sample
}

// LoadHistory reads the rolling window for a sketch from path, returning
// an empty History if the file does not yet exist.
func LoadHistory(path string) (*History, error) {
	h := &History{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return h, nil
		}
		return nil, fmt.Errorf("compile: read history %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &h.samples); err != nil {
		return nil, fmt.Errorf("compile: parse history %s: %w", path, err)
	}
	return h, nil
}

// HistoryPath returns the conventional per-sketch history file path.
func HistoryPath(dir, sketchName string) string {
	return filepath.Join(dir, sketchName+".history.json")
}

// Record appends a completed run's stage durations, trimming the window
// to maxPerStage per stage and maxTotal overall (oldest first), and
// persists the result.
func (h *History) Record(durations map[Stage]time.Duration) error {
	for _, stage := range []Stage{Initializing, Compiling, Linking, Generating} {
		d, ok := durations[stage]
		if !ok {
			continue
		}
		h.samples = append(h.samples, sample{Stage: stage, Duration: d})
	}
	h.trim()
	return h.save()
}

func (h *History) trim() {
	perStage := map[Stage]int{}
	kept := make([]sample, 0, len(h.samples))
	// Walk from the end so the most recent maxPerStage survive per stage.
	for i := len(h.samples) - 1; i >= 0; i-- {
		s := h.samples[i]
		if perStage[s.Stage] >= maxPerStage {
			continue
		}
		perStage[s.Stage]++
		kept = append(kept, s)
	}
	// kept is newest-first; reverse to restore chronological order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	if over := len(kept) - maxTotal; over > 0 {
		kept = kept[over:]
	}
	h.samples = kept
}

func (h *History) save() error {
	if h.path == "" {
		return nil
	}
	data, err := json.Marshal(h.samples)
	if err != nil {
		return fmt.Errorf("compile: encode history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("compile: create history dir: %w", err)
	}
	return atomicWrite(h.path, data)
}

// averageDuration returns the mean recorded duration for stage, or 0 if
// no samples exist.
func (h *History) averageDuration(stage Stage) time.Duration {
	var sum time.Duration
	var n int
	for _, s := range h.samples {
		if s.Stage == stage {
			sum += s.Duration
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / time.Duration(n)
}

// RecentDurationsSeconds returns up to n most recent recorded durations for
// stage, oldest first, in seconds, for feeding a components.Sparkline trend
// display next to the ETA.
func (h *History) RecentDurationsSeconds(stage Stage, n int) []float64 {
	if h == nil || n <= 0 {
		return nil
	}
	var all []float64
	for _, s := range h.samples {
		if s.Stage == stage {
			all = append(all, s.Duration.Seconds())
		}
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}

// weights derives stage weights from historical average durations,
// normalized to sum to 100. Falls back to defaultWeights for any stage
// with no samples yet.
func (h *History) weights() map[Stage]float64 {
	if h == nil {
		return defaultWeights
	}
	stages := []Stage{Initializing, Compiling, Linking, Generating}
	var total time.Duration
	avgs := make(map[Stage]time.Duration, len(stages))
	for _, s := range stages {
		avgs[s] = h.averageDuration(s)
		total += avgs[s]
	}
	if total == 0 {
		return defaultWeights
	}

	w := make(map[Stage]float64, len(stages))
	for _, s := range stages {
		if avgs[s] == 0 {
			w[s] = defaultWeights[s]
			continue
		}
		w[s] = 100 * float64(avgs[s]) / float64(total)
	}
	return w
}

// ETA blends the current run's observed rate (70%) with the historical
// average stage duration (30%) to estimate remaining time for the
// current stage, per the weighted estimator in the data model.
func (h *History) ETA(st State, elapsedInStage time.Duration) time.Duration {
	hist := h.averageDuration(st.Stage)
	var fromCurrent time.Duration
	if st.StagePct > 0 {
		fromCurrent = time.Duration(float64(elapsedInStage) * (100 - st.StagePct) / st.StagePct)
	} else {
		fromCurrent = hist
	}
	if hist == 0 {
		return fromCurrent
	}
	remainingHist := time.Duration(float64(hist) * (100 - st.StagePct) / 100)
	return time.Duration(0.7*float64(fromCurrent) + 0.3*float64(remainingHist))
}

// atomicWrite mirrors the settings package's temp-file-then-rename
// idiom; duplicated here rather than imported to keep compile free of a
// dependency on settings.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("compile: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("compile: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("compile: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("compile: rename into place: %w", err)
	}

	success = true
	return nil
}
