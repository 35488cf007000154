// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI. Printable keys are left to
// the search input, so every action is bound to a control key.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// NextMode switches to the next checker mode.
	NextMode key.Binding

	// PrevMode switches to the previous checker mode.
	PrevMode key.Binding

	// NextCategory cycles the searched category within the mode.
	NextCategory key.Binding

	// Up navigates up in the suggestion list.
	Up key.Binding

	// Down navigates down in the suggestion list.
	Down key.Binding

	// Add adds the highlighted suggestion to the selection.
	Add key.Binding

	// RemoveLast removes the most recently added item.
	RemoveLast key.Binding

	// ClearAll empties the selection.
	ClearAll key.Binding

	// Check runs an interaction check.
	Check key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev mode"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "category"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		RemoveLast: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "remove last"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear all"),
		),
		Check: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "check"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Add, k.Check, k.Quit}
}

// SelectionHelp returns keybindings shown once items are selected.
func (k *KeyMap) SelectionHelp() []key.Binding {
	return []key.Binding{k.Check, k.RemoveLast, k.ClearAll, k.Quit}
}

// FullHelp returns the full list of keybindings.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add},
		{k.NextMode, k.PrevMode, k.NextCategory},
		{k.RemoveLast, k.ClearAll, k.Check},
		{k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
