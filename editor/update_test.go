package editor

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func caret(t *testing.T, m Model) (line, col int) {
	t.Helper()
	line = m.Buffer().Focused()
	col, ok := m.Buffer().CaretColumn(line)
	if !ok {
		t.Fatalf("no caret recorded for focused line %d", line)
	}
	return line, col
}

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{}, // keep styles minimal for this test
	})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := m.Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if _, col := caret(t, m); col != 2 {
		t.Fatalf("caret after insert: got %d, want %d", col, 2)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if _, col := caret(t, m); col != 1 {
		t.Fatalf("caret after backspace: got %d, want %d", col, 1)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.Text(); got != "a" {
		t.Fatalf("text after delete: got %q, want %q", got, "a")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.Text(); got != "a " {
		t.Fatalf("text after space: got %q, want %q", got, "a ")
	}
}

func TestUpdate_EnterSplitsAtCaret(t *testing.T) {
	m := New(Config{Text: "hello world"})
	for i := 0; i < 5; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Text(); got != "hello\n world" {
		t.Fatalf("text after enter: got %q, want %q", got, "hello\n world")
	}
	if line, col := caret(t, m); line != 1 || col != 0 {
		t.Fatalf("caret after enter: got (%d,%d), want (1,0)", line, col)
	}
	if h := m.Buffer().Heights(); len(h) != 2 {
		t.Fatalf("heights after enter: got %v, want 2 entries", h)
	}
}

func TestUpdate_CtrlJSplitsLikeEnter(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlJ})
	if got := m.Text(); got != "a\nb" {
		t.Fatalf("text after ctrl+j: got %q, want %q", got, "a\nb")
	}
}

func TestUpdate_RepeatedEnterEachSplits(t *testing.T) {
	m := New(Config{Text: "a"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Text(); got != "a\n\n" {
		t.Fatalf("text after two enters: got %q, want %q", got, "a\n\n")
	}
	if line, _ := caret(t, m); line != 2 {
		t.Fatalf("focus after two enters: got %d, want %d", line, 2)
	}
}

func TestUpdate_ReboundEnter(t *testing.T) {
	km := DefaultKeyMap()
	km.Enter = key.NewBinding(key.WithKeys("ctrl+s"))
	m := New(Config{Text: "ab", KeyMap: km})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if got := m.Text(); got != "a\nb" {
		t.Fatalf("text after rebound enter: got %q, want %q", got, "a\nb")
	}
}

func TestUpdate_BackspaceAtLineStartMerges(t *testing.T) {
	m := New(Config{Text: "ab\ncd"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if line, col := caret(t, m); line != 1 || col != 0 {
		t.Fatalf("caret after down: got (%d,%d), want (1,0)", line, col)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Text(); got != "abcd" {
		t.Fatalf("text after merge: got %q, want %q", got, "abcd")
	}
	if line, col := caret(t, m); line != 0 || col != 4 {
		t.Fatalf("caret after merge: got (%d,%d), want (0,4)", line, col)
	}
	if h := m.Buffer().Heights(); len(h) != 1 {
		t.Fatalf("heights after merge: got %v, want 1 entry", h)
	}
}

func TestUpdate_BackspaceOnFirstLineStartIsNoop(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Text(); got != "ab" {
		t.Fatalf("text: got %q, want %q", got, "ab")
	}
}

func TestUpdate_PasteSplitsOnLineBreaks(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\r\ny\nz"), Paste: true})
	if got := m.Text(); got != "abx\ny\nz" {
		t.Fatalf("text after paste: got %q, want %q", got, "abx\ny\nz")
	}
	if line, col := caret(t, m); line != 2 || col != 0 {
		t.Fatalf("caret after paste: got (%d,%d), want (2,0)", line, col)
	}
}

func TestUpdate_HorizontalMovementCrossesLines(t *testing.T) {
	m := New(Config{Text: "ab\ncd"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if line, col := caret(t, m); line != 1 || col != 0 {
		t.Fatalf("caret after right at EOL: got (%d,%d), want (1,0)", line, col)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if line, col := caret(t, m); line != 0 || col != 2 {
		t.Fatalf("caret after left at BOL: got (%d,%d), want (0,2)", line, col)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if line, col := caret(t, m); line != 0 || col != 0 {
		t.Fatalf("caret after left at document start: got (%d,%d), want (0,0)", line, col)
	}
}

func TestUpdate_VerticalMovementKeepsColumn(t *testing.T) {
	m := New(Config{Text: "abcd\nx\nefgh"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if line, col := caret(t, m); line != 1 || col != 1 {
		t.Fatalf("caret on short line: got (%d,%d), want (1,1)", line, col)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if line, col := caret(t, m); line != 2 || col != 1 {
		t.Fatalf("caret on last line: got (%d,%d), want (2,1)", line, col)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if line, _ := caret(t, m); line != 2 {
		t.Fatalf("down on last line moved focus to %d", line)
	}
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = m.Blur()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := m.Text(); got != "ab" {
		t.Fatalf("text while blurred: got %q, want %q", got, "ab")
	}
}

func TestUpdate_HostEditsAreRendered(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = m.Blur()
	m.Buffer().SetText(0, "changed")

	m, _ = m.Update(struct{}{})
	if got := viewRows(m.SetSize(20, 1))[0]; got != "changed" {
		t.Fatalf("view after host edit: got %q, want %q", got, "changed")
	}
}

// Keys can reach Update before the command returned by the previous edit has
// delivered its message.
func TestUpdate_KeysBeforeDeferredFocus(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		setup      []tea.KeyMsg
		keys       []tea.KeyMsg
		wantText   string
		wantLine   int
		wantCaret  int
		wantLineAt string
	}{
		{
			name:       "enter then rune",
			text:       "a",
			setup:      []tea.KeyMsg{{Type: tea.KeyEnd}},
			keys:       []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyRunes, Runes: []rune("b")}},
			wantText:   "a\nb",
			wantLine:   1,
			wantCaret:  1,
			wantLineAt: "b",
		},
		{
			name:       "enter twice",
			text:       "ab",
			setup:      []tea.KeyMsg{{Type: tea.KeyRight}},
			keys:       []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyEnter}},
			wantText:   "a\n\nb",
			wantLine:   2,
			wantCaret:  0,
			wantLineAt: "b",
		},
		{
			name:       "backspace twice",
			text:       "ab\ncd\nef",
			setup:      []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}},
			keys:       []tea.KeyMsg{{Type: tea.KeyBackspace}, {Type: tea.KeyBackspace}},
			wantText:   "ab\ncde",
			wantLine:   1,
			wantCaret:  3,
			wantLineAt: "cde",
		},
	}

	for _, tc := range cases {
		m := New(Config{Text: tc.text})
		for _, k := range tc.setup {
			m = press(t, m, k)
		}

		var held []tea.Cmd
		for _, k := range tc.keys {
			var cmd tea.Cmd
			m, cmd = m.Update(k)
			held = append(held, cmd)
		}
		for _, cmd := range held {
			m = pump(t, m, cmd)
		}

		if got := m.Text(); got != tc.wantText {
			t.Fatalf("%s: text: got %q, want %q", tc.name, got, tc.wantText)
		}
		line, col := caret(t, m)
		if line != tc.wantLine || col != tc.wantCaret {
			t.Fatalf("%s: caret: got (%d,%d), want (%d,%d)", tc.name, line, col, tc.wantLine, tc.wantCaret)
		}
		if got := m.Buffer().Line(line); got != tc.wantLineAt {
			t.Fatalf("%s: focused line: got %q, want %q", tc.name, got, tc.wantLineAt)
		}
	}
}

func TestUpdate_PasteNormalisesCarriageReturns(t *testing.T) {
	m := New(Config{Text: ""})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\rb\r\nc"), Paste: true})
	if got := m.Text(); got != "a\nb\nc" {
		t.Fatalf("text after paste: got %q, want %q", got, "a\nb\nc")
	}
}
