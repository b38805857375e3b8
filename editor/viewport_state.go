package editor

import (
	"github.com/iw2rmb/typewriter/internal/grapheme"
	"github.com/iw2rmb/typewriter/markdown"
)

// ViewportState is a stable host-facing snapshot of editor camera state.
type ViewportState struct {
	// TopRow is the content row rendered at viewport screen row 0, counting
	// typewriter padding.
	TopRow int
	// VisibleRows is the number of content rows available for rendering.
	VisibleRows int
	// Padding is the blank rows above the first line and below the last.
	// It is zero outside typewriter mode.
	Padding    int
	Typewriter bool
}

// ViewportState returns the current host-facing viewport state.
func (m Model) ViewportState() ViewportState {
	return ViewportState{
		TopRow:      m.viewport.YOffset,
		VisibleRows: m.viewportHeight(),
		Padding:     m.padding,
		Typewriter:  m.scroll.Enabled(),
	}
}

// ScreenToLine maps viewport-local screen coordinates to a line index and
// caret column. ok is false for cells in typewriter padding.
func (m Model) ScreenToLine(x, y int) (line, col int, ok bool) {
	docY := y + m.viewport.YOffset - m.padding
	if docY < 0 {
		return 0, 0, false
	}

	top := 0
	for i, h := range m.buf.Heights() {
		if docY >= top+h {
			top += h
			continue
		}
		text := m.buf.Line(i)
		w, left := m.textArea(markdown.Classify(text).Kind)
		// Wrapped rows continue the line at the text width.
		return i, columnAt(text, (docY-top)*w+max(x-left, 0)), true
	}
	return 0, 0, false
}

// textArea returns the wrap width of a row of kind and the cells before its
// text, matching wrapRow.
func (m Model) textArea(kind markdown.BlockKind) (width, left int) {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	if kind != markdown.Blockquote {
		return w, 0
	}
	border := m.cfg.Style.QuoteBorder
	left = border.GetMarginLeft() + border.GetBorderLeftSize() + border.GetPaddingLeft()
	if w > 0 {
		w = max(w-border.GetHorizontalFrameSize(), 1)
	}
	return w, left
}

// LineToScreen returns the viewport-local screen row of the first row of
// line. ok is false when that row is scrolled out of view.
func (m Model) LineToScreen(line int) (y int, ok bool) {
	heights := m.buf.Heights()
	if line < 0 || line >= len(heights) {
		return 0, false
	}
	top := m.padding
	for _, h := range heights[:line] {
		top += h
	}
	y = top - m.viewport.YOffset
	return y, y >= 0 && y < m.viewportHeight()
}

// columnAt returns the grapheme column whose cell span covers cell x.
func columnAt(text string, x int) int {
	cells := 0
	for i, g := range grapheme.Split(text) {
		cells += grapheme.Width(g)
		if x < cells {
			return i
		}
	}
	return grapheme.Count(text)
}
