package app

import "testing"

func TestOverlayAtReplacesOnlyCoveredColumns(t *testing.T) {
	bg := "AAAAAAAAAA\nAAAAAAAAAA\nAAAAAAAAAA"
	fg := "BB\nBB"

	got := overlayAt(bg, fg, 3, 1)
	want := "AAAAAAAAAA\nAAABBAAAAA\nAAABBAAAAA"
	if got != want {
		t.Errorf("overlayAt:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestOverlayAtExtendsShortBackground(t *testing.T) {
	bg := "AA"
	fg := "BB"

	got := overlayAt(bg, fg, 0, 1)
	want := "AA\nBB"
	if got != want {
		t.Errorf("overlayAt past bg end:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestOverlayAtClampsNegativeOrigin(t *testing.T) {
	bg := "AAAA"
	fg := "BB"

	got := overlayAt(bg, fg, -5, -5)
	want := "BBAA"
	if got != want {
		t.Errorf("overlayAt negative origin:\ngot:  %q\nwant: %q", got, want)
	}
}
