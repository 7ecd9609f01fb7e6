package components

import (
	"fmt"
	"regexp"
	"strconv"
)

// rgbEscape matches a 24-bit foreground or background SGR sequence, e.g.
// "\x1b[38;2;255;128;0m" or "\x1b[48;2;0;0;0m".
var rgbEscape = regexp.MustCompile(`\x1b\[(38|48);2;(\d+);(\d+);(\d+)m`)

// Dimmer applies a dimming overlay to already-rendered content by
// blending every embedded 24-bit color escape toward a grey of equivalent
// perceived luminance and darkening it, both by Factor. It never mutates
// state between calls: the same input and Factor always produce the
// same output.
type Dimmer struct {
	// Factor is how strongly to dim every color, in [0, 1].
	// 0 leaves colors unchanged; 1 turns each color into its luminance
	// grey at half brightness.
	Factor float64
}

// Apply rewrites every true-color escape sequence in s.
func (d Dimmer) Apply(s string) string {
	factor := d.Factor
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	if factor == 0 {
		return s
	}

	return rgbEscape.ReplaceAllStringFunc(s, func(match string) string {
		groups := rgbEscape.FindStringSubmatch(match)
		channel := groups[1]
		r, _ := strconv.Atoi(groups[2])
		g, _ := strconv.Atoi(groups[3])
		b, _ := strconv.Atoi(groups[4])

		grey := luminance(r, g, b)
		nr := dimChannel(r, grey, factor)
		ng := dimChannel(g, grey, factor)
		nb := dimChannel(b, grey, factor)

		return fmt.Sprintf("\x1b[%s;2;%d;%d;%dm", channel, nr, ng, nb)
	})
}

// luminance computes perceived brightness via the Rec. 601 weights.
func luminance(r, g, b int) int {
	return (299*r + 587*g + 114*b) / 1000
}

// dimChannel blends channel toward grey by factor, then further toward
// black proportional to factor, producing a muted grey-scale tone rather
// than a flat desaturation.
func dimChannel(channel, grey int, factor float64) int {
	blended := float64(channel) + (float64(grey)-float64(channel))*factor
	darkened := blended * (1 - 0.5*factor)
	if darkened < 0 {
		darkened = 0
	}
	if darkened > 255 {
		darkened = 255
	}
	return int(darkened)
}
