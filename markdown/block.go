package markdown

import "strings"

// BlockKind identifies the block-level role of a line.
type BlockKind uint8

const (
	Paragraph BlockKind = iota
	Heading
	Blockquote
)

func (k BlockKind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Blockquote:
		return "blockquote"
	default:
		return "paragraph"
	}
}

// BlockStyle describes how a whole line is presented.
//
// FontSize and FontWeight are nominal typographic values (points, CSS-style
// weight). Renderers without variable fonts map them onto what they have.
type BlockStyle struct {
	Kind  BlockKind
	Level int // 1-3 for headings, 0 otherwise

	FontSize   int
	FontWeight int
	LeftBorder bool
}

// Bold reports whether the block weight reads as bold.
func (s BlockStyle) Bold() bool { return s.FontWeight >= 600 }

var (
	paragraphStyle  = BlockStyle{Kind: Paragraph, FontSize: 16, FontWeight: 400}
	blockquoteStyle = BlockStyle{Kind: Blockquote, FontSize: 16, FontWeight: 400, LeftBorder: true}
	headingStyles   = [...]BlockStyle{
		{Kind: Heading, Level: 1, FontSize: 28, FontWeight: 700},
		{Kind: Heading, Level: 2, FontSize: 24, FontWeight: 700},
		{Kind: Heading, Level: 3, FontSize: 20, FontWeight: 600},
	}
)

// Most specific prefix first.
var blockPrefixes = []struct {
	prefix string
	style  BlockStyle
}{
	{"### ", headingStyles[2]},
	{"## ", headingStyles[1]},
	{"# ", headingStyles[0]},
	{"> ", blockquoteStyle},
}

// Classify returns the block style for line.
func Classify(line string) BlockStyle {
	for _, p := range blockPrefixes {
		if strings.HasPrefix(line, p.prefix) {
			return p.style
		}
	}
	return paragraphStyle
}
