package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"monthcal/internal/config"
)

// KeyMap is the keyboard side of the widget's bindings. Mouse clicks are
// resolved through the hit map instead.
type KeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Notes   key.Binding
	Add     key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func NewKeyMap(k config.Keymap) KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys(k.Prev, "pgup"),
			key.WithHelp(k.Prev, "prev month"),
		),
		Next: key.NewBinding(
			key.WithKeys(k.Next, "pgdown"),
			key.WithHelp(k.Next, "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys(k.Today),
			key.WithHelp(k.Today, "today"),
		),
		Left: key.NewBinding(
			key.WithKeys(k.Left, "left"),
			key.WithHelp("←/"+k.Left, "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys(k.Right, "right"),
			key.WithHelp("→/"+k.Right, "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys(k.Up, "up"),
			key.WithHelp("↑/"+k.Up, "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys(k.Down, "down"),
			key.WithHelp("↓/"+k.Down, "next week"),
		),
		Notes: key.NewBinding(
			key.WithKeys(k.Confirm),
			key.WithHelp(k.Confirm, "reload notes"),
		),
		Add: key.NewBinding(
			key.WithKeys(k.Add),
			key.WithHelp(k.Add, "add note"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(k.Confirm),
			key.WithHelp(k.Confirm, "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(k.Cancel),
			key.WithHelp(k.Cancel, "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys(k.Help),
			key.WithHelp(k.Help, "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys(k.Quit, "ctrl+c"),
			key.WithHelp(k.Quit, "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Add, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.Left, k.Right, k.Up, k.Down},
		{k.Notes, k.Add, k.Help, k.Quit},
	}
}

// addModeHelp is shown while the note input has focus.
type addModeHelp struct {
	confirm, cancel key.Binding
}

func (a addModeHelp) ShortHelp() []key.Binding { return []key.Binding{a.confirm, a.cancel} }

func (a addModeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{a.ShortHelp()} }
