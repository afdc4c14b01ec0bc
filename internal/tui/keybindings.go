package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the prompts.
type KeyMap struct {
	// Navigation
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding

	// Answers
	Yes     key.Binding
	No      key.Binding
	Confirm key.Binding

	// Control
	CtrlC key.Binding
}

// DefaultKeyMap provides the default key bindings for the prompts.
var DefaultKeyMap = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "yes"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "no"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "toggle"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "confirm"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("ctrl+c", "abort"),
	),
}
