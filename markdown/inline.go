package markdown

import "strings"

// Segment is a run of line text with inline styling.
//
// Marker segments hold the literal delimiters (`*`, `__`, ...). They are
// rendered muted rather than hidden.
type Segment struct {
	Text   string
	Bold   bool
	Italic bool
	Marker bool
}

// Plain reports whether the segment carries no styling.
func (s Segment) Plain() bool { return !s.Bold && !s.Italic && !s.Marker }

const maxMarkerLen = 3

// Tokenize splits line into styled segments.
//
// The scan is single pass and does not nest. At each delimiter the longest
// marker (up to three characters) opens a span that must be closed by the
// same marker string; if it is never closed, the rest of the line is emitted
// as plain text. Empty text yields one space so a rendered row keeps its
// height.
func Tokenize(line string) []Segment {
	if line == "" {
		return []Segment{{Text: " "}}
	}

	var out []Segment
	plainStart := 0
	i := 0
	for i < len(line) {
		c := line[i]
		if c != '*' && c != '_' {
			i++
			continue
		}

		n := countRepeat(line[i:], c)
		if n > maxMarkerLen {
			n = maxMarkerLen
		}
		marker := line[i : i+n]

		rel := strings.Index(line[i+n:], marker)
		if rel < 0 {
			// Unterminated: everything from plainStart on stays plain.
			break
		}

		out = appendPlain(out, line[plainStart:i])
		content := line[i+n : i+n+rel]
		out = append(out, Segment{Text: marker, Marker: true})
		if content != "" {
			out = append(out, Segment{
				Text:   content,
				Bold:   n >= 2,
				Italic: n == 1 || n == 3,
			})
		}
		out = append(out, Segment{Text: marker, Marker: true})

		i += n + rel + n
		plainStart = i
	}

	out = appendPlain(out, line[plainStart:])
	return out
}

// Text reassembles the source line from segments.
func Text(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func appendPlain(out []Segment, s string) []Segment {
	if s == "" {
		return out
	}
	return append(out, Segment{Text: s})
}

func countRepeat(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
