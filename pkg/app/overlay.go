package app

import (
	"strings"

	"github.com/tinyland/devconsole/pkg/components"
)

// overlayAt composites fg on top of bg at (x, y), line by line, clipping
// to bg's line count and padding bg with blank lines if fg extends past
// it. Each affected bg line keeps its own content to the left of x and to
// the right of fg's width; only the columns fg actually covers are
// replaced. This is the same blit-a-rendered-box-onto-a-buffer idea the
// base component uses for modal compositing, scaled down to one overlay
// instead of a full widget grid.
func overlayAt(bg, fg string, x, y int) string {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}

	for i, fgLine := range fgLines {
		row := y + i
		bgLines[row] = spliceLine(bgLines[row], fgLine, x)
	}

	return strings.Join(bgLines, "\n")
}

// spliceLine replaces bgLine's content from column x through x+width(fgLine)
// with fgLine, preserving whatever bgLine had before x and after that span.
func spliceLine(bgLine, fgLine string, x int) string {
	fgWidth := components.VisibleLen(fgLine)
	padded := components.PadRight(bgLine, x+fgWidth)

	left := components.PadRight(components.Truncate(padded, x), x)
	right := components.TruncateLeft(padded, x+fgWidth)
	return left + fgLine + right
}

// blankCanvas returns an h-line, w-wide string of spaces, used as the
// backdrop a component gets blitted onto when it only occupies part of
// its parent's area (e.g. a form centered within its pane).
func blankCanvas(w, h int) string {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
