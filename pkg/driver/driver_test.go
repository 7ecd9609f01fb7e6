package driver

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFilterKeyReleasesDropsReleaseMessages(t *testing.T) {
	if got := filterKeyReleases(nil, tea.KeyReleaseMsg{}); got != nil {
		t.Errorf("expected release message to be dropped, got %v", got)
	}
}

func TestFilterKeyReleasesPassesOtherMessages(t *testing.T) {
	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	if got := filterKeyReleases(nil, msg); got != msg {
		t.Errorf("expected non-release message to pass through unchanged, got %v", got)
	}
}

func TestNegotiateCapabilitiesNeverPanics(t *testing.T) {
	// DetectCapabilities reads the ambient environment; this only checks
	// that negotiation runs to completion and returns a value, since the
	// actual mouse/color decision depends on the test sandbox's terminal.
	got := NegotiateCapabilities(DefaultOptions())
	_ = got.AltScreen
	_ = got.Mouse
}
