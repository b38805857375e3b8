package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/typewriter/internal/grapheme"
	"github.com/iw2rmb/typewriter/markdown"
)

func (m Model) renderContent() string {
	n := m.buf.Len()
	out := make([]string, 0, n+2*m.padding)
	for i := 0; i < m.padding; i++ {
		out = append(out, "")
	}
	for i := 0; i < n; i++ {
		out = append(out, m.renderRow(i))
	}
	for i := 0; i < m.padding; i++ {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (m Model) rowHeight(i int) int {
	return lipgloss.Height(m.renderRow(i))
}

// renderRow renders line i: block style from its prefix, inline emphasis from
// its delimiters, the caret when the line has focus, wrapped to the viewport
// width.
func (m Model) renderRow(i int) string {
	st := m.cfg.Style
	line := m.buf.Line(i)
	block := markdown.Classify(line)

	base := st.Text
	switch block.Kind {
	case markdown.Heading:
		base = st.Heading[block.Level-1]
	case markdown.Blockquote:
		base = st.Quote
	}
	if block.Bold() {
		base = base.Bold(true)
	}

	caret := -1
	if m.focused && i == m.buf.Focused() {
		caret, _ = m.buf.CaretColumn(i)
	}

	var sb strings.Builder
	col := 0
	for _, seg := range markdown.Tokenize(line) {
		s := base
		if seg.Marker {
			s = st.Marker.Inherit(base)
		}
		if seg.Bold {
			s = s.Bold(true)
		}
		if seg.Italic {
			s = s.Italic(true)
		}

		n := grapheme.Count(seg.Text)
		if caret < col || caret >= col+n {
			sb.WriteString(s.Render(seg.Text))
			col += n
			continue
		}
		at := caret - col
		if at > 0 {
			sb.WriteString(s.Render(grapheme.Slice(seg.Text, 0, at)))
		}
		sb.WriteString(st.Cursor.Inherit(s).Render(grapheme.Slice(seg.Text, at, at+1)))
		if at+1 < n {
			sb.WriteString(s.Render(grapheme.Slice(seg.Text, at+1, n)))
		}
		col += n
	}
	if caret >= col {
		// Caret at end of line.
		sb.WriteString(st.Cursor.Inherit(base).Render(" "))
	}

	return m.wrapRow(block.Kind, sb.String())
}

func (m Model) wrapRow(kind markdown.BlockKind, row string) string {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	if kind == markdown.Blockquote {
		border := m.cfg.Style.QuoteBorder
		if w > 0 {
			w -= border.GetHorizontalBorderSize() + border.GetHorizontalMargins()
			if w < 1 {
				w = 1
			}
			border = border.Width(w)
		}
		return border.Render(row)
	}
	if w <= 0 {
		return row
	}
	return lipgloss.NewStyle().Width(w).Render(row)
}
