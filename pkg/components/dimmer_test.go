package components

import (
	"strings"
	"testing"
)

func TestDimmerZeroFactorIsIdentity(t *testing.T) {
	d := Dimmer{Factor: 0}
	s := Color("#ff0000") + "hello" + Reset()
	if got := d.Apply(s); got != s {
		t.Errorf("zero-factor Apply changed input: got %q, want %q", got, s)
	}
}

func TestDimmerPullsTowardGrey(t *testing.T) {
	d := Dimmer{Factor: 1}
	s := Color("#ff0000") + "hello" + Reset()
	got := d.Apply(s)
	if got == s {
		t.Error("expected full-factor Apply to change the color escape")
	}
	if !strings.Contains(got, "hello") {
		t.Error("expected visible text to be preserved")
	}
}

func TestDimmerClampsFactor(t *testing.T) {
	full := Dimmer{Factor: 1}.Apply(Color("#00ff00"))
	over := Dimmer{Factor: 5}.Apply(Color("#00ff00"))
	if full != over {
		t.Errorf("factor > 1 should clamp to the same result as factor 1: got %q vs %q", over, full)
	}
}
