package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the browser.
type KeyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Launch  key.Binding
	Reload  key.Binding
	Details key.Binding
	Health  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("Tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("Shift+Tab", "prev tab"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Details: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "details"),
		),
		Health: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "health"),
		),
	}
}

// keys is the global key map instance.
var keys = DefaultKeyMap()

// Keys returns the global key map.
func Keys() KeyMap {
	return keys
}
