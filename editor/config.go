package editor

import "log/slog"

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Typewriter keeps the focused line vertically centered. When false the
	// viewport only scrolls as far as needed to keep the focused line visible.
	Typewriter bool
	// KeepSoftKeyboard keeps the soft keyboard up while typewriter mode drives
	// input through the editor. See Model.SoftKeyboardVisible.
	KeepSoftKeyboard bool

	// CenterBias is added to every centering offset, in rows. A positive
	// bias rests the focused line slightly above center.
	CenterBias int
	// DefaultLineHeight seeds row heights before the first measurement.
	// default: 1
	DefaultLineHeight int

	Style  Style
	KeyMap KeyMap

	// OnChange is called after updates that changed text, focus or caret.
	OnChange func(ChangeEvent)

	// Logger receives debug records for structural edits. nil discards.
	Logger *slog.Logger
}
