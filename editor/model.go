package editor

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/typewriter/input"
	"github.com/iw2rmb/typewriter/internal/deferred"
	"github.com/iw2rmb/typewriter/linebuf"
	"github.com/iw2rmb/typewriter/scroll"
)

// Model is a Bubble Tea component that renders and edits a linebuf.Buffer.
//
// Structural edits move focus on the next turn of the event loop. Update
// returns a command that delivers that turn; hosts must feed the resulting
// message back into Update like any other.
type Model struct {
	cfg Config
	log *slog.Logger

	buf    *linebuf.Buffer
	tasks  *deferred.Queue
	router *input.Router
	scroll *scroll.Controller

	focused bool

	viewport viewport.Model
	// padding is the blank rows rendered above the first line and below the
	// last in typewriter mode.
	padding int

	lastVersion      uint64
	lastFocusVersion uint64
	lastFocused      int
}

// flushMsg runs the deferred tasks queued by a structural edit.
type flushMsg struct{ q *deferred.Queue }

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.DefaultLineHeight <= 0 {
		cfg.DefaultLineHeight = linebuf.DefaultHeight
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tasks := &deferred.Queue{}
	buf := linebuf.New(cfg.Text, linebuf.Options{
		DefaultHeight: cfg.DefaultLineHeight,
		Scheduler:     tasks,
	})
	buf.Focus(0, 0)

	m := Model{
		cfg:      cfg,
		log:      logger,
		buf:      buf,
		tasks:    tasks,
		router:   input.NewRouter(buf, logger),
		scroll:   scroll.NewController(nil, cfg.Typewriter, cfg.CenterBias),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	tasks.OnDrop = func(key int) {
		logger.Debug("dropped deferred focus", slog.Int("line", key))
	}
	m.lastVersion = buf.Version()
	m.lastFocusVersion = buf.FocusVersion()
	m.measure()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *linebuf.Buffer { return m.buf }

// Text returns the document joined with "\n".
func (m Model) Text() string { return m.buf.Text() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height
	m.scroll.SetViewport(m.viewportHeight())

	m.measure()
	m.rebuildContent()
	m.follow(scroll.Resized)
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.follow(scroll.FocusMoved)
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// Typewriter reports whether the focused line is kept centered.
func (m Model) Typewriter() bool { return m.scroll.Enabled() }

// SetTypewriter switches typewriter mode on or off.
func (m Model) SetTypewriter(v bool) Model {
	if m.scroll.Enabled() == v {
		return m
	}
	m.scroll.SetEnabled(v)
	m.rebuildContent()
	m.follow(scroll.FocusMoved)
	return m
}

// SoftKeyboardVisible reports whether a host with an on-screen keyboard
// should keep it up. Typewriter mode hides it unless KeepSoftKeyboard is set.
func (m Model) SoftKeyboardVisible() bool {
	return !m.scroll.Enabled() || m.cfg.KeepSoftKeyboard
}

// ScrollOffset returns the viewport's vertical offset in rows, including
// typewriter padding.
func (m Model) ScrollOffset() int { return m.viewport.YOffset }

// Close drops pending focus transfers. The model keeps rendering but
// structural edits no longer move focus.
func (m Model) Close() {
	m.tasks.Close()
}

func (m Model) View() string { return m.viewport.View() }

func (m Model) viewportHeight() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}

func (m *Model) rebuildContent() {
	m.padding = 0
	if m.scroll.Enabled() {
		m.padding = m.viewportHeight()
	}
	m.viewport.SetContent(m.renderContent())
}

// measure stores the rendered height of every line in the buffer. It
// reports whether any height changed.
func (m *Model) measure() bool {
	changed := false
	for i := 0; i < m.buf.Len(); i++ {
		if m.buf.SetHeight(i, m.rowHeight(i)) {
			changed = true
		}
	}
	return changed
}

// follow scrolls the focused line into place: centered in typewriter mode,
// minimally into view otherwise.
func (m *Model) follow(trigger scroll.Trigger) {
	if !m.focused {
		return
	}
	if off, ok := m.scroll.Recenter(trigger, m.buf); ok {
		m.viewport.SetYOffset(off)
		return
	}
	if m.scroll.Enabled() {
		return
	}

	h := m.viewportHeight()
	if h <= 0 {
		return
	}
	heights := m.buf.Heights()
	top := 0
	for _, rh := range heights[:m.buf.Focused()] {
		top += rh
	}
	bottom := top + heights[m.buf.Focused()]

	y := m.viewport.YOffset
	if top < y {
		m.viewport.SetYOffset(top)
		return
	}
	if bottom > y+h {
		m.viewport.SetYOffset(bottom - h)
	}
}
