package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
//
// Enter and Backspace bindings feed the logical key name handed to the input
// router; the router also recognises their control codes directly, so
// terminals that report only one of the two still split and merge lines.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	Home, End             key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left", "ctrl+b"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right", "ctrl+f"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous line")),
		Down:  key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next line")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete", "ctrl+d"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter", "ctrl+j"), key.WithHelp("enter", "new line")),
	}
}

func (km KeyMap) isZero() bool {
	return len(km.Enter.Keys()) == 0 && len(km.Backspace.Keys()) == 0 && len(km.Up.Keys()) == 0
}
