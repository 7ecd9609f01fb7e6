package compile

import "testing"

func TestAdvanceIsMonotonic(t *testing.T) {
	var st State
	if !st.Advance(Compiling) {
		t.Fatal("expected advance to Compiling to succeed")
	}
	if !st.Advance(Generating) {
		t.Fatal("expected advance to Generating to succeed")
	}
	if st.Advance(Linking) {
		t.Error("advance to an earlier-ranked stage must be rejected")
	}
	if st.Stage != Generating {
		t.Errorf("stage regressed: got %v, want Generating", st.Stage)
	}
}

func TestAdvanceOutOfOrderMarkersStillEndsAtLaterStage(t *testing.T) {
	// Scenario 4: inject Linking then Generating, and separately
	// Generating then Linking; both must end at Generating.
	var a State
	a.Advance(Linking)
	a.Advance(Generating)

	var b State
	b.Advance(Generating)
	b.Advance(Linking)

	if a.Stage != Generating || b.Stage != Generating {
		t.Errorf("got a=%v b=%v, want both Generating", a.Stage, b.Stage)
	}
}

func TestFailedIsAlwaysReachable(t *testing.T) {
	var st State
	st.Advance(Compiling)
	if !st.Advance(Failed) {
		t.Fatal("expected Failed to always be reachable")
	}
	if st.Advance(Generating) {
		t.Error("no stage should be reachable once Failed")
	}
}

func TestOverallIsMonotonicWithinStage(t *testing.T) {
	var st State
	st.Advance(Compiling)
	st.StagePct = 10
	st.Overall(nil)
	first := st.Percent

	st.StagePct = 90
	st.Overall(nil)
	second := st.Percent

	if second <= first {
		t.Errorf("overall percent did not increase: %v -> %v", first, second)
	}
}

func TestCompleteIsAlwaysHundredPercent(t *testing.T) {
	var st State
	st.Advance(Compiling)
	st.Advance(Linking)
	st.Advance(Generating)
	st.Advance(Complete)
	st.Overall(nil)
	if st.Percent != 100 {
		t.Errorf("Percent at Complete = %v, want 100", st.Percent)
	}
}
