package layout

import "testing"

func TestCenteredSizesAndCenters(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 40}
	got := Centered(outer, 50, 50)

	if got.Width != 50 || got.Height != 20 {
		t.Errorf("Centered size = %dx%d, want 50x20", got.Width, got.Height)
	}
	wantX, wantY := 25, 10
	if got.X != wantX || got.Y != wantY {
		t.Errorf("Centered origin = (%d,%d), want (%d,%d)", got.X, got.Y, wantX, wantY)
	}
}

func TestCenteredFullSizeReturnsOuter(t *testing.T) {
	outer := Rect{X: 2, Y: 3, Width: 40, Height: 20}
	got := Centered(outer, 100, 100)
	if got != outer {
		t.Errorf("Centered(outer, 100, 100) = %+v, want %+v", got, outer)
	}
}

func TestCenteredCachedMatchesUncached(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 40}
	want := Centered(outer, 70, 60)

	c := NewLayoutCache()
	got := c.CenteredCached(outer, 70, 60)
	if got != want {
		t.Errorf("CenteredCached = %+v, want %+v", got, want)
	}
	// A repeated call for the same outer should hit the cache rather than
	// accumulate fresh entries for the two internal splits.
	c.CenteredCached(outer, 70, 60)
	if n := c.Len(); n != 2 {
		t.Errorf("expected 2 cache entries (vertical + horizontal split), got %d", n)
	}
}
