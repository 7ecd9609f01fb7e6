package layout

// Centered computes the content rect sized to widthPct% x heightPct% of
// outer, centered within it, via two Percentage splits (vertical then
// horizontal). Centered itself caches nothing; LayoutCache.CenteredCached
// runs the same two splits through a cache.
func Centered(outer Rect, widthPct, heightPct int) Rect {
	rows := SplitVertical(outer,
		Percentage{(100 - heightPct) / 2},
		Percentage{heightPct},
		Percentage{(100 - heightPct) / 2},
	)
	middleRow := rows[1]

	cols := SplitHorizontal(middleRow,
		Percentage{(100 - widthPct) / 2},
		Percentage{widthPct},
		Percentage{(100 - widthPct) / 2},
	)
	return cols[1]
}
