package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Text lipgloss.Style
	// Marker renders Markdown delimiters that stay visible while typing.
	Marker lipgloss.Style

	// Heading styles levels 1-3.
	Heading [3]lipgloss.Style
	// Quote styles blockquote text; QuoteBorder wraps the whole row and
	// should carry a left border.
	Quote       lipgloss.Style
	QuoteBorder lipgloss.Style

	Cursor lipgloss.Style
}

func DefaultStyle() Style {
	muted := lipgloss.Color("241")
	return Style{
		Text:   lipgloss.NewStyle(),
		Marker: lipgloss.NewStyle().Foreground(muted),
		Cursor: lipgloss.NewStyle().Reverse(true),

		Heading: [3]lipgloss.Style{
			lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true),
			lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("219")),
		},

		Quote: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),

		QuoteBorder: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(muted).
			PaddingLeft(1),
	}
}
