// Package keymap holds the TUI's key bindings and their help text.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is every binding the screens react to.
type KeyMap struct {
	Quit key.Binding
	// Back returns to the menu, or cancels a capture that is waiting.
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	Pick    key.Binding
	Capture key.Binding
	Delete  key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap uses vi-style movement alongside the arrow keys.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:    bind("q", "quit", "q", "ctrl+c"),
		Back:    bind("esc", "back", "esc"),
		Up:      bind("↑/k", "up", "up", "k"),
		Down:    bind("↓/j", "down", "down", "j"),
		Select:  bind("enter", "select", "enter"),
		Pick:    bind("p", "pick from library", "p"),
		Capture: bind("c", "take photo", "c"),
		Delete:  bind("d", "delete photo", "d"),
	}
}

// ListHelp is shown while scrolling contacts.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

// ChooserHelp is shown while a library photo is being chosen.
func (k *KeyMap) ChooserHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// ProfileHelp is shown on the profile screen. Delete appears only when
// there is a photo.
func (k *KeyMap) ProfileHelp(hasImage bool) []key.Binding {
	if hasImage {
		return []key.Binding{k.Pick, k.Capture, k.Delete, k.Back}
	}
	return []key.Binding{k.Pick, k.Capture, k.Back}
}

type keyName string

func (n keyName) String() string { return string(n) }

// Matches reports whether the key named by s (as tea.KeyMsg.String
// formats it) triggers any of bindings.
func Matches(s string, bindings ...key.Binding) bool {
	return key.Matches(keyName(s), bindings...)
}
