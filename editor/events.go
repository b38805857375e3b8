package editor

import "github.com/iw2rmb/typewriter/linebuf"

// ChangeEvent describes the editor state after an update that changed text,
// focus or caret.
type ChangeEvent struct {
	Version uint64

	// Focused is the line index holding input focus; Caret is its caret
	// column in graphemes.
	Focused int
	Caret   int

	Text string
}

func buildChangeEvent(b *linebuf.Buffer) ChangeEvent {
	ev := ChangeEvent{
		Version: b.Version(),
		Focused: b.Focused(),
		Text:    b.Text(),
	}
	ev.Caret, _ = b.CaretColumn(ev.Focused)
	return ev
}
