package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	g := uniseg.NewGraphemes(text)
	idx := 0
	var sb strings.Builder
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	if start >= idx {
		return ""
	}
	return sb.String()
}

// Cut splits text at grapheme column col. col is clamped to the text bounds.
func Cut(text string, col int) (head, tail string) {
	if col <= 0 {
		return "", text
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	for g.Next() {
		if idx == col {
			from, _ := g.Positions()
			return text[:from], text[from:]
		}
		idx++
	}
	return text, ""
}

// Insert places s into text at grapheme column col.
func Insert(text string, col int, s string) string {
	head, tail := Cut(text, col)
	return head + s + tail
}

// DeleteBefore removes the grapheme ending at column col. It returns the text
// unchanged when col is 0.
func DeleteBefore(text string, col int) string {
	if col <= 0 || text == "" {
		return text
	}
	head, tail := Cut(text, col)
	prev, _ := Cut(head, Count(head)-1)
	return prev + tail
}

// DeleteAt removes the grapheme starting at column col.
func DeleteAt(text string, col int) string {
	head, tail := Cut(text, col)
	if tail == "" {
		return text
	}
	_, rest := Cut(tail, 1)
	return head + rest
}

// Width returns the terminal cell width of text.
func Width(text string) int {
	w := runewidth.StringWidth(text)
	if w <= 0 && text != "" {
		if fallback := uniseg.StringWidth(text); fallback > w {
			w = fallback
		}
	}
	if w < 0 {
		return 0
	}
	return w
}
