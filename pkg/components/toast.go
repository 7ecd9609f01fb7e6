package components

import (
	"fmt"
	"time"
)

// ToastLevel selects a toast's color treatment.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarning
	ToastError
)

func (l ToastLevel) color() string {
	switch l {
	case ToastWarning:
		return "#FF9800"
	case ToastError:
		return "#F44336"
	default:
		return "#4CAF50"
	}
}

// Toast is a transient notification. It holds no mutable state itself;
// Render derives its fade purely from the caller-supplied now and the
// Shown/Duration fields, so re-rendering the same Toast twice with the
// same now always produces the same output.
type Toast struct {
	Message  string
	Level    ToastLevel
	Shown    time.Time
	Duration time.Duration // total lifetime before fully faded
	FadeFor  time.Duration // tail of Duration spent fading out
}

// Visible reports whether the toast has any opacity left at now.
func (t Toast) Visible(now time.Time) bool {
	return now.Sub(t.Shown) < t.Duration
}

// opacity returns 1.0 while inside the solid portion of the toast's
// life, linearly decaying to 0.0 over the final FadeFor.
func (t Toast) opacity(now time.Time) float64 {
	elapsed := now.Sub(t.Shown)
	if elapsed >= t.Duration {
		return 0
	}
	fadeStart := t.Duration - t.FadeFor
	if t.FadeFor <= 0 || elapsed < fadeStart {
		return 1
	}
	remaining := t.Duration - elapsed
	return float64(remaining) / float64(t.FadeFor)
}

// Render projects the toast at now. Fade is approximated by dimming text
// intensity in discrete steps as opacity drops, since terminal cells
// have no true alpha channel.
func (t Toast) Render(now time.Time) string {
	if !t.Visible(now) {
		return ""
	}
	op := t.opacity(now)
	text := fmt.Sprintf(" %s ", t.Message)
	switch {
	case op > 0.66:
		return "\x1b[1m" + Color(t.Level.color()) + text + Reset()
	case op > 0.33:
		return Color(t.Level.color()) + text + Reset()
	default:
		return Dim(text)
	}
}
