// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application from the menu.
	Quit key.Binding

	// Back returns to the previous view or closes a panel.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Enter confirms a selection or submits an input.
	Enter key.Binding

	// NextPage and PrevPage page through server-side lists.
	NextPage key.Binding
	PrevPage key.Binding

	// Search focuses the client-side filter.
	Search key.Binding

	// Toggle adds or removes the current invoice from the selection.
	Toggle key.Binding

	// ClearSelection empties the selection.
	ClearSelection key.Binding

	// Ask opens the inline AI question.
	Ask key.Binding

	// Open opens the document in the browser.
	Open key.Binding

	// Run starts the compliance workflow.
	Run key.Binding

	// Refresh reloads from the backend.
	Refresh key.Binding

	// SwitchType flips between invoice and contract uploads.
	SwitchType key.Binding

	// Export writes the report workbook.
	Export key.Binding

	// Clear removes the stored report.
	Clear key.Binding

	// Theme toggles between light and dark.
	Theme key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:           key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Back:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		NextPage:       key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "next page")),
		PrevPage:       key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "prev page")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Toggle:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		ClearSelection: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear selection")),
		Ask:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ask")),
		Open:           key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Run:            key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "run workflow")),
		Refresh:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		SwitchType:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch type")),
		Export:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Clear:          key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear report")),
		Theme:          key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Theme}
}

// FullHelp returns all bindings grouped by purpose.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.NextPage, k.PrevPage, k.Search, k.Refresh},
		{k.Toggle, k.ClearSelection, k.Run, k.Ask, k.Open},
		{k.SwitchType, k.Export, k.Clear, k.Theme, k.Quit},
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
