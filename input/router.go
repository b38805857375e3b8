package input

import (
	"io"
	"log/slog"
	"strings"

	"github.com/iw2rmb/typewriter/internal/grapheme"
	"github.com/iw2rmb/typewriter/linebuf"
)

type routerState uint8

const (
	stateIdle routerState = iota
	// stateEnterHeld suppresses the newline some platforms also inject into
	// the text-change event for the same Enter press.
	stateEnterHeld
)

// Router interprets key, text-change and selection-change events for one
// buffer and applies the resulting split, merge and set-text edits.
type Router struct {
	buf   *linebuf.Buffer
	state routerState
	log   *slog.Logger
}

// NewRouter returns a router editing buf. A nil logger discards records.
func NewRouter(buf *linebuf.Buffer, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Router{buf: buf, log: logger}
}

// EnterHeld reports whether an Enter press is still in progress.
func (r *Router) EnterHeld() bool { return r.state == stateEnterHeld }

// KeyDown handles a key press on line index. It reports whether the event
// was consumed; when false, the host applies its native behavior (inserting
// or deleting a character within the line).
func (r *Router) KeyDown(index int, k RawKey) bool {
	switch Normalize(k) {
	case KeyEnter:
		if r.state == stateEnterHeld {
			return true
		}
		r.state = stateEnterHeld
		r.splitAtCaret(index)
		return true

	case KeyBackspace:
		r.state = stateIdle
		if !r.atLineStart(index) {
			return false
		}
		r.mergeUp(index, "key")
		return true

	default:
		r.state = stateIdle
		return false
	}
}

// KeyUp handles a key release. Releasing Enter ends the held state.
func (r *Router) KeyUp(k RawKey) {
	if Normalize(k) == KeyEnter {
		r.state = stateIdle
	}
}

// TextChanged applies the text-field contents of line index after an edit.
//
// A line break in text is handled like Enter unless an Enter press already
// split the line. An empty line that stays empty is treated as Backspace,
// covering keyboards that delete without a detectable key event.
func (r *Router) TextChanged(index int, text string) {
	if strings.Contains(text, "\n") {
		if r.state == stateEnterHeld {
			r.log.Debug("dropped duplicate newline", slog.Int("line", index))
			return
		}
		r.splitText(index, text)
		return
	}

	if text == "" && r.buf.Line(index) == "" && index > 0 {
		r.mergeUp(index, "empty text change")
		return
	}
	r.buf.SetText(index, text)
}

// SelectionChanged records the caret column of line index.
func (r *Router) SelectionChanged(index, col int) {
	r.buf.SetCaretColumn(index, col)
}

func (r *Router) atLineStart(index int) bool {
	if r.buf.Line(index) == "" {
		return true
	}
	col, ok := r.buf.CaretColumn(index)
	return ok && col == 0
}

func (r *Router) splitAtCaret(index int) {
	text := r.buf.Line(index)
	col, ok := r.buf.CaretColumn(index)
	if !ok {
		col = grapheme.Count(text)
	}
	head, tail := grapheme.Cut(text, col)
	r.buf.SplitAt(index, head, tail)
	r.log.Debug("split line", slog.Int("line", index), slog.Int("col", col))
}

// splitText splits text on every line break so no buffer line keeps one.
func (r *Router) splitText(index int, text string) {
	parts := strings.Split(text, "\n")
	for k := 1; k < len(parts); k++ {
		r.buf.SplitAt(index+k-1, parts[k-1], parts[k])
	}
	r.log.Debug("split text change", slog.Int("line", index), slog.Int("breaks", len(parts)-1))
}

func (r *Router) mergeUp(index int, cause string) {
	if index == 0 {
		return
	}
	r.buf.MergeUp(index)
	r.log.Debug("merged line", slog.Int("line", index), slog.String("cause", cause))
}
