// Package input turns raw keyboard and text-field events into line buffer
// edits.
//
// Hardware keyboards, soft keyboards and terminals report the same logical
// key through different fields, and some only report a line break or a
// deletion through the text-change event. Normalize collapses the key event
// shapes; Router reconciles the rest.
package input

import "strings"

// KeyKind is a logical key after normalization.
type KeyKind uint8

const (
	KeyOther KeyKind = iota
	KeyEnter
	KeyBackspace
)

func (k KeyKind) String() string {
	switch k {
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	default:
		return "other"
	}
}

// RawKey is a key event as delivered by the platform. Any field may be
// unset (zero).
type RawKey struct {
	// Name is the logical key name ("Enter", "backspace", "ctrl+m", ...).
	Name string
	// KeyCode is the platform key code: ASCII control codes or Android
	// KEYCODE_* values.
	KeyCode int
	// ScanCode is the hardware scan code (Linux evdev numbering).
	ScanCode int
}

const (
	asciiBS  = 8
	asciiLF  = 10
	asciiCR  = 13
	asciiDEL = 127

	androidEnter       = 66
	androidDel         = 67
	androidNumpadEnter = 160

	scanBackspace = 14
	scanEnter     = 28
	scanKPEnter   = 96
)

var enterNames = map[string]bool{
	"enter":  true,
	"return": true,
	"ctrl+m": true,
	"ctrl+j": true,
	"\r":     true,
	"\n":     true,
}

var backspaceNames = map[string]bool{
	"backspace": true,
	"ctrl+h":    true,
}

// Normalize classifies k. Every detection path is tried because no single
// field is populated on every device and keyboard combination.
func Normalize(k RawKey) KeyKind {
	name := strings.ToLower(k.Name)
	switch {
	case enterNames[name]:
		return KeyEnter
	case backspaceNames[name]:
		return KeyBackspace
	}

	switch k.KeyCode {
	case asciiCR, asciiLF, androidEnter, androidNumpadEnter:
		return KeyEnter
	case asciiBS, asciiDEL, androidDel:
		return KeyBackspace
	}

	switch k.ScanCode {
	case scanEnter, scanKPEnter:
		return KeyEnter
	case scanBackspace:
		return KeyBackspace
	}
	return KeyOther
}
