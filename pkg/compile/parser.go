package compile

import (
	"path/filepath"
	"regexp"
	"strconv"
)

// marker pairs a regular expression with the stage it signals. Markers
// are declared as data, not branching code, so new build tool output
// formats can be supported by appending a row.
type marker struct {
	stage Stage
	re    *regexp.Regexp
}

// markers is checked top-to-bottom per line, but when more than one
// marker matches the same line the later-ranked stage wins, guaranteeing
// monotonic advance even if a tool interleaves output unexpectedly.
var markers = []marker{
	{Initializing, regexp.MustCompile(`(?i)\b(detecting|resolving|initializ\w*)\b`)},
	{Compiling, regexp.MustCompile(`(?i)\b(compiling|building)\b`)},
	{Linking, regexp.MustCompile(`(?i)\blinking\b`)},
	{Generating, regexp.MustCompile(`(?i)\b(generating|writing output|creating esp-idf partition)\b`)},
	{Complete, regexp.MustCompile(`(?i)\b(done|success|sketch uses)\b`)},
}

var errPattern = regexp.MustCompile(`(?i)(error:|fatal error|compilation terminated|Error compiling for board)`)

// filesRatio matches "compiled 42/100" or "[ 42/100]"-style progress
// lines that several build tools emit.
var filesRatio = regexp.MustCompile(`\[?\s*(\d+)\s*/\s*(\d+)\s*\]?`)

// currentFileExpr matches a source path being compiled, e.g.
// "Compiling sketch/main.ino"; Feed keeps only its base name ("main.ino").
var currentFileExpr = regexp.MustCompile(`(?i)(?:compiling|building)\s+(\S+\.(?:ino|cpp|c|cc|h|hpp))`)

// Parser consumes a build tool's stdout line by line and updates a State
// in place.
type Parser struct {
	State State
	Hist  *History
}

// NewParser returns a parser starting at Initializing, optionally seeded
// with historical stage durations for ETA weighting.
func NewParser(hist *History) *Parser {
	return &Parser{Hist: hist}
}

// Feed processes one line of output, applying stage transitions, file
// progress, and error detection, then recomputes overall percent.
// Returns true if the line caused a stage transition.
func (p *Parser) Feed(line string) (advanced bool) {
	if errPattern.MatchString(line) {
		return p.State.Advance(Failed)
	}

	best := -1
	bestRank := -1
	for i, m := range markers {
		if !m.re.MatchString(line) {
			continue
		}
		if r := order[m.stage]; m.stage != Complete && r > bestRank {
			bestRank = r
			best = i
		} else if m.stage == Complete {
			best = i
			bestRank = order[Complete]
		}
	}
	if best >= 0 {
		advanced = p.State.Advance(markers[best].stage)
	}

	if mm := filesRatio.FindStringSubmatch(line); mm != nil {
		done, _ := strconv.Atoi(mm[1])
		total, _ := strconv.Atoi(mm[2])
		if total > 0 && done >= p.State.FilesDone {
			p.State.FilesDone = done
			p.State.FilesTotal = total
			p.State.StagePct = 100 * float64(done) / float64(total)
		}
	}

	if mm := currentFileExpr.FindStringSubmatch(line); mm != nil {
		p.State.CurrentFile = filepath.Base(mm[1])
	}

	p.State.Overall(p.Hist)
	return advanced
}
