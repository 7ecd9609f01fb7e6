package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickInterval is the per-frame animation tick, short enough that toast
// fades and ETA recomputation feel smooth without burning CPU on an idle
// console. Kept at the ≤50ms ceiling the concurrency model recommends.
const tickInterval = 50 * time.Millisecond

// tickMsg drives OnTick across every live component once per interval.
type tickMsg time.Time

// TickCmd returns a Cmd that fires after tickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
