package editor

import tea "github.com/charmbracelet/bubbletea"

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	// Typewriter mode owns the scroll position.
	if !m.scroll.Enabled() || !isManualScrollMouse(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
	}

	if !m.focused {
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, cmd
	}
	if !m.mouseInBounds(msg.X, msg.Y) {
		return m, cmd
	}

	line, col, ok := m.ScreenToLine(msg.X, msg.Y)
	if !ok {
		return m, cmd
	}
	m.buf.Focus(line, col)
	m.sync()
	return m, cmd
}

func isManualScrollMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}
