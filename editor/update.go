package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/typewriter/input"
	"github.com/iw2rmb/typewriter/internal/grapheme"
	"github.com/iw2rmb/typewriter/scroll"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(flushMsg); !ok {
		// Any other event starts the next turn: focus moves queued by the
		// previous edit land before the event is routed.
		m.settle()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case flushMsg:
		if msg.q != m.tasks {
			return m, nil
		}
		m.tasks.Flush()
		m.sync()
		return m, m.flushCmd()
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	default:
		// The host may have mutated the buffer directly.
		m.sync()
		return m, m.flushCmd()
	}
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	idx := m.buf.Focused()

	// Paste events always insert literal text.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		text := lineBreaks.Replace(string(msg.Runes))
		m.insertText(idx, text)
		return m.afterEdit()
	}

	rk := m.rawKey(msg)
	if m.router.KeyDown(idx, rk) {
		if input.Normalize(rk) == input.KeyEnter {
			// Terminals never report the release.
			m.router.KeyUp(rk)
		}
		return m.afterEdit()
	}

	km := m.cfg.KeyMap
	line := m.buf.Line(idx)
	n := grapheme.Count(line)
	col, ok := m.buf.CaretColumn(idx)
	if !ok {
		col = n
	}

	switch {
	case input.Normalize(rk) == input.KeyBackspace:
		if col > 0 {
			m.router.TextChanged(idx, grapheme.DeleteBefore(line, col))
			m.router.SelectionChanged(idx, col-1)
		}
	case key.Matches(msg, km.Delete):
		if col < n {
			m.router.TextChanged(idx, grapheme.DeleteAt(line, col))
		}

	case key.Matches(msg, km.Left):
		if col > 0 {
			m.router.SelectionChanged(idx, col-1)
		} else if idx > 0 {
			m.buf.Focus(idx-1, grapheme.Count(m.buf.Line(idx-1)))
		}
	case key.Matches(msg, km.Right):
		if col < n {
			m.router.SelectionChanged(idx, col+1)
		} else if idx+1 < m.buf.Len() {
			m.buf.Focus(idx+1, 0)
		}
	case key.Matches(msg, km.Up):
		if idx > 0 {
			m.buf.Focus(idx-1, col)
		}
	case key.Matches(msg, km.Down):
		if idx+1 < m.buf.Len() {
			m.buf.Focus(idx+1, col)
		}
	case key.Matches(msg, km.Home):
		m.router.SelectionChanged(idx, 0)
	case key.Matches(msg, km.End):
		m.router.SelectionChanged(idx, n)

	case msg.Type == tea.KeySpace:
		m.insertText(idx, " ")
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0:
		m.insertText(idx, string(msg.Runes))

	default:
		return m, nil
	}
	return m.afterEdit()
}

// rawKey translates msg for the input router. Bound Enter and Backspace keys
// get their logical name; control keys also carry their ASCII code.
func (m Model) rawKey(msg tea.KeyMsg) input.RawKey {
	rk := input.RawKey{Name: msg.String()}
	switch {
	case key.Matches(msg, m.cfg.KeyMap.Enter):
		rk.Name = "Enter"
	case key.Matches(msg, m.cfg.KeyMap.Backspace):
		rk.Name = "Backspace"
	}
	if msg.Type >= 0 {
		rk.KeyCode = int(msg.Type)
	}
	return rk
}

// insertText inserts s at the caret of line idx the way a native text field
// would, then reports the new contents to the router.
func (m *Model) insertText(idx int, s string) {
	line := m.buf.Line(idx)
	col, ok := m.buf.CaretColumn(idx)
	if !ok {
		col = grapheme.Count(line)
	}
	m.router.TextChanged(idx, grapheme.Insert(line, col, s))
	if !strings.Contains(s, "\n") {
		m.router.SelectionChanged(idx, col+grapheme.Count(s))
	}
}

func (m Model) afterEdit() (Model, tea.Cmd) {
	m.sync()
	return m, m.flushCmd()
}

// settle runs pending deferred tasks now.
func (m *Model) settle() {
	if m.tasks.Pending() == 0 {
		return
	}
	m.tasks.Flush()
	m.sync()
}

// flushCmd schedules the next turn for pending deferred tasks.
func (m Model) flushCmd() tea.Cmd {
	if m.tasks.Pending() == 0 {
		return nil
	}
	q := m.tasks
	return func() tea.Msg { return flushMsg{q: q} }
}

// sync remeasures, rebuilds and scrolls after the buffer changed, then
// notifies OnChange. It reports whether anything changed.
func (m *Model) sync() bool {
	ver, fver := m.buf.Version(), m.buf.FocusVersion()
	textChanged := ver != m.lastVersion
	focusChanged := fver != m.lastFocusVersion
	if !textChanged && !focusChanged {
		return false
	}
	lineChanged := m.buf.Focused() != m.lastFocused
	m.lastVersion = ver
	m.lastFocusVersion = fver
	m.lastFocused = m.buf.Focused()

	heightChanged := m.measure()
	m.rebuildContent()
	switch {
	case lineChanged:
		m.follow(scroll.FocusMoved)
	case heightChanged:
		m.follow(scroll.HeightChanged)
	default:
		m.follow(scroll.CaretMoved)
	}

	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf))
	}
	return true
}
