package compile

import "testing"

func TestParserDetectsStageProgression(t *testing.T) {
	p := NewParser(nil)
	lines := []string{
		"Detecting libraries",
		"Compiling sketch/main.ino",
		"Linking everything together",
		"Generating esp-idf partition table",
		"Sketch uses 123456 bytes",
	}
	for _, l := range lines {
		p.Feed(l)
	}
	if p.State.Stage != Complete {
		t.Errorf("final stage = %v, want Complete", p.State.Stage)
	}
}

func TestParserDetectsErrorAndFailsRun(t *testing.T) {
	p := NewParser(nil)
	p.Feed("Compiling sketch/main.ino")
	p.Feed("main.ino:12:3: error: expected ';' before '}' token")
	if p.State.Stage != Failed {
		t.Errorf("stage = %v, want Failed", p.State.Stage)
	}
}

func TestParserExtractsFileRatio(t *testing.T) {
	p := NewParser(nil)
	p.Feed("Compiling sketch/main.ino")
	p.Feed("[ 42/100] Building CXX object main.cpp.o")
	if p.State.FilesDone != 42 || p.State.FilesTotal != 100 {
		t.Errorf("got %d/%d, want 42/100", p.State.FilesDone, p.State.FilesTotal)
	}
	if p.State.StagePct != 42 {
		t.Errorf("StagePct = %v, want 42", p.State.StagePct)
	}
}

func TestParserExtractsCurrentFile(t *testing.T) {
	p := NewParser(nil)
	p.Feed("Compiling blink/blink.ino")
	if p.State.CurrentFile != "blink.ino" {
		t.Errorf("CurrentFile = %q, want %q", p.State.CurrentFile, "blink.ino")
	}
}

func TestParserTieBreakPrefersLaterStage(t *testing.T) {
	// A line that could plausibly match both an earlier and later marker
	// must resolve to the later stage, preserving monotonic advance.
	p := NewParser(nil)
	p.Feed("Compiling stage begins")
	advanced := p.Feed("Generating output after compiling")
	if !advanced || p.State.Stage != Generating {
		t.Errorf("stage = %v, want Generating", p.State.Stage)
	}
}
