package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
	Tab    key.Binding

	// View switching
	ViewDiary     key.Binding
	ViewCatalogue key.Binding
	ViewStats     key.Binding
	ViewSettings  key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Diary actions
	PrevDay    key.Binding
	NextDay    key.Binding
	Today      key.Binding
	NewEntry   key.Binding
	EditEntry  key.Binding
	DeleteItem key.Binding
	BodyWeight key.Binding

	// Catalogue actions
	NewFood  key.Binding
	EditFood key.Binding
	Pick     key.Binding

	// Forms
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel / back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),

		ViewDiary: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Diary view"),
		),
		ViewCatalogue: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Catalogue view"),
		),
		ViewStats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stats view"),
		),
		ViewSettings: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Settings view"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "Move down"),
		),

		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h/←", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("l/→", "Next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Jump to today"),
		),
		NewEntry: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add entry"),
		),
		EditEntry: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit entry"),
		),
		DeleteItem: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete entry"),
		),
		BodyWeight: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Set body weight"),
		),

		NewFood: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add food"),
		),
		EditFood: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit food"),
		),
		Pick: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pick / dismiss food"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
