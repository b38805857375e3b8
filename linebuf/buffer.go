package linebuf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iw2rmb/typewriter/internal/deferred"
	"github.com/iw2rmb/typewriter/internal/grapheme"
)

// DefaultHeight is the row height assigned to lines before their first
// measurement.
const DefaultHeight = 1

// Scheduler defers a callback to the next turn of the host event loop.
// Tasks are keyed by line index. *deferred.Queue implements it.
type Scheduler interface {
	Schedule(key int, fn func()) *deferred.Task
	CancelFrom(from int)
}

type Options struct {
	// DefaultHeight seeds heights for unmeasured lines. default: 1
	DefaultHeight int

	// Scheduler defers focus transfers after split/merge. When nil, focus
	// moves immediately.
	Scheduler Scheduler
}

// Buffer is the document as an ordered list of lines with a parallel list of
// measured row heights.
//
// Index is the only line identity. SplitAt and MergeUp are the only
// structural mutators and always change lines and heights together.
type Buffer struct {
	lines   []string
	heights []int

	focused int
	caret   map[int]int

	version       uint64
	heightVersion uint64
	focusVersion  uint64

	opt Options
}

// New seeds a buffer from text split on "\n". A trailing newline yields a
// trailing empty line, so Text returns the input unchanged.
func New(text string, opt Options) *Buffer {
	if opt.DefaultHeight <= 0 {
		opt.DefaultHeight = DefaultHeight
	}
	lines := splitLines(text)
	heights := make([]int, len(lines))
	for i := range heights {
		heights[i] = opt.DefaultHeight
	}
	return &Buffer{
		lines:   lines,
		heights: heights,
		caret:   make(map[int]int),
		opt:     opt,
	}
}

// Text joins the lines with "\n".
func (b *Buffer) Text() string { return strings.Join(b.lines, "\n") }

func (b *Buffer) Len() int { return len(b.lines) }

func (b *Buffer) Line(index int) string { return b.lines[index] }

// Lines returns a copy of the lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Heights returns a copy of the height table.
func (b *Buffer) Heights() []int {
	out := make([]int, len(b.heights))
	copy(out, b.heights)
	return out
}

func (b *Buffer) Height(index int) int { return b.heights[index] }

// Version increments on every text or structure change.
func (b *Buffer) Version() uint64 { return b.version }

// HeightVersion increments whenever the height table changes.
func (b *Buffer) HeightVersion() uint64 { return b.heightVersion }

// FocusVersion increments whenever the focused line or its caret moves.
func (b *Buffer) FocusVersion() uint64 { return b.focusVersion }

func (b *Buffer) Focused() int { return b.focused }

// CaretColumn returns the last recorded caret column for index.
func (b *Buffer) CaretColumn(index int) (int, bool) {
	col, ok := b.caret[index]
	return col, ok
}

// SetCaretColumn records the caret column (in graphemes) for index.
func (b *Buffer) SetCaretColumn(index, col int) {
	if index < 0 || index >= len(b.lines) {
		return
	}
	col = clampInt(col, 0, grapheme.Count(b.lines[index]))
	if prev, ok := b.caret[index]; ok && prev == col {
		return
	}
	b.caret[index] = col
	if index == b.focused {
		b.focusVersion++
	}
}

// Focus moves input focus to index and places the caret at col. Out of
// range values are clamped.
func (b *Buffer) Focus(index, col int) {
	index = clampInt(index, 0, len(b.lines)-1)
	col = clampInt(col, 0, grapheme.Count(b.lines[index]))
	prevCol, hadCol := b.caret[index]
	if index == b.focused && hadCol && prevCol == col {
		return
	}
	b.focused = index
	b.caret[index] = col
	b.focusVersion++
}

// SplitAt replaces line index with head and inserts tail after it. Focus
// moves to the new line on the next scheduler turn.
func (b *Buffer) SplitAt(index int, head, tail string) {
	b.checkIndex(index)
	mustBeSingleLine(head)
	mustBeSingleLine(tail)

	b.lines[index] = head
	b.lines = insertAt(b.lines, index+1, tail)
	b.heights = insertAt(b.heights, index+1, b.opt.DefaultHeight)
	b.shiftCarets(index+1, 1)
	if col, ok := b.caret[index]; ok {
		b.caret[index] = minInt(col, grapheme.Count(head))
	}
	b.caret[index+1] = 0
	if b.focused > index {
		b.focused++
		b.focusVersion++
	}

	b.version++
	b.heightVersion++
	b.scheduleFocus(index+1, index+1, func() int { return 0 })
}

// MergeUp appends line index onto its predecessor and removes it. The
// removed height is added onto the predecessor until it is remeasured.
// Focus moves to index-1 with the caret at the end of the merged line.
// MergeUp(0) is a no-op.
func (b *Buffer) MergeUp(index int) {
	b.checkIndex(index)
	if index == 0 {
		return
	}

	prev := index - 1
	b.lines[prev] += b.lines[index]
	b.heights[prev] += b.heights[index]
	b.lines = removeAt(b.lines, index)
	b.heights = removeAt(b.heights, index)
	delete(b.caret, index)
	b.shiftCarets(index+1, -1)
	b.caret[prev] = grapheme.Count(b.lines[prev])
	if b.focused >= index {
		b.focused--
		b.focusVersion++
	}

	b.version++
	b.heightVersion++
	b.scheduleFocus(prev, prev, func() int { return grapheme.Count(b.lines[prev]) })
}

// SetText replaces line index verbatim. text must not contain a line break;
// callers route line breaks through SplitAt.
func (b *Buffer) SetText(index int, text string) {
	b.checkIndex(index)
	mustBeSingleLine(text)
	if b.lines[index] == text {
		return
	}
	b.lines[index] = text
	if col, ok := b.caret[index]; ok {
		b.caret[index] = minInt(col, grapheme.Count(text))
	}
	b.version++
}

// SetHeight records a measured height. It reports whether the table changed.
func (b *Buffer) SetHeight(index, h int) bool {
	if index < 0 || index >= len(b.heights) {
		return false
	}
	if h < 0 {
		h = 0
	}
	if b.heights[index] == h {
		return false
	}
	b.heights[index] = h
	b.heightVersion++
	return true
}

// scheduleFocus defers a focus transfer to index. Pending tasks keyed at or
// after shifted may now address a different line and are canceled.
func (b *Buffer) scheduleFocus(shifted, index int, col func() int) {
	if b.opt.Scheduler == nil {
		b.Focus(index, col())
		return
	}
	b.opt.Scheduler.CancelFrom(shifted)
	b.opt.Scheduler.Schedule(index, func() {
		if index >= len(b.lines) {
			return
		}
		b.Focus(index, col())
	})
}

// shiftCarets moves caret entries at or after from by delta.
func (b *Buffer) shiftCarets(from, delta int) {
	if len(b.caret) == 0 {
		return
	}
	keys := make([]int, 0, len(b.caret))
	for k := range b.caret {
		if k >= from {
			keys = append(keys, k)
		}
	}
	// Walk away from the direction of travel so entries never collide.
	sort.Ints(keys)
	if delta > 0 {
		for i := len(keys) - 1; i >= 0; i-- {
			k := keys[i]
			b.caret[k+delta] = b.caret[k]
			delete(b.caret, k)
		}
		return
	}
	for _, k := range keys {
		b.caret[k+delta] = b.caret[k]
		delete(b.caret, k)
	}
}

func (b *Buffer) checkIndex(index int) {
	if index < 0 || index >= len(b.lines) {
		panic(fmt.Sprintf("linebuf: line index %d out of range [0,%d)", index, len(b.lines)))
	}
}

func mustBeSingleLine(s string) {
	if strings.Contains(s, "\n") {
		panic(fmt.Sprintf("linebuf: line text contains a line break: %q", s))
	}
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeAt[T any](s []T, i int) []T {
	copy(s[i:], s[i+1:])
	return s[:len(s)-1]
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
