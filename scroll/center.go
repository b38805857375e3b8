// Package scroll keeps the focused line vertically centered in a viewport.
//
// Content is assumed to be padded with one viewport height of blank space
// above the first line and below the last, so every line, including the
// first and last, can reach the center.
package scroll

// ComputeOffset returns the scroll offset that centers line focused:
//
//	headerPadding + sum(heights[:focused]) + heights[focused]/2 - viewport/2 + centerBias
//
// focused is clamped into range and the result is never negative.
func ComputeOffset(focused int, heights []int, viewport, headerPadding, centerBias int) int {
	above := 0
	own := 0
	if len(heights) > 0 {
		focused = clampInt(focused, 0, len(heights)-1)
		for _, h := range heights[:focused] {
			above += h
		}
		own = heights[focused]
	}

	off := headerPadding + above + own/2 - viewport/2 + centerBias
	if off < 0 {
		return 0
	}
	return off
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
