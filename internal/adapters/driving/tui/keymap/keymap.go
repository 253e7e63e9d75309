// Package keymap defines keybindings for the TUI.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view, or leaves a filter field.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select opens the highlighted item or submits an input.
	Select key.Binding

	// NextField moves focus through the filter panel.
	NextField key.Binding

	// PrevField moves focus backwards through the filter panel.
	PrevField key.Binding

	// CyclePrev selects the previous value of a categorical filter.
	CyclePrev key.Binding

	// CycleNext selects the next value of a categorical filter.
	CycleNext key.Binding

	// Group cycles the grouping mode.
	Group key.Binding

	// Layout toggles between card and compact products.
	Layout key.Binding

	// Clear resets every filter.
	Clear key.Binding

	// Open goes to the load view.
	Open key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next filter"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev filter"),
		),
		CyclePrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev value"),
		),
		CycleNext: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next value"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group"),
		),
		Layout: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "layout"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "load source"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// CatalogHelp returns keybindings for the catalog view.
func (k *KeyMap) CatalogHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Group, k.Layout, k.Clear, k.Select}
}

// FilterHelp returns keybindings shown while a filter field has focus.
func (k *KeyMap) FilterHelp() []key.Binding {
	return []key.Binding{k.NextField, k.CyclePrev, k.CycleNext, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.NextField, k.PrevField, k.CyclePrev, k.CycleNext},
		{k.Group, k.Layout, k.Clear, k.Open},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
