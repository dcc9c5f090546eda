// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/styles"
)

// Item is one entry of the main menu.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool
}

// View is the landing screen. Digits 1-9 open the matching entry directly.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	items  []Item
	cursor list.Cursor
	width  int
	height int
	ready  bool
}

// NewView creates the menu with every page of the app.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		items: []Item{
			{Label: "Dashboard", Description: "Counts, backend health and recent uploads", View: messages.ViewDashboard},
			{Label: "Invoices", Description: "Browse invoices and run the compliance workflow", View: messages.ViewInvoices},
			{Label: "Contracts", Description: "Browse contracts and ask about their terms", View: messages.ViewContracts},
			{Label: "Upload", Description: "Send an invoice or contract PDF", View: messages.ViewUpload},
			{Label: "Reports", Description: "Violations and risk from the last workflow run", View: messages.ViewReports},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
	v.cursor.SetLen(len(v.items))
	return v
}

func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or opens an entry.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		if n, ok := digit(msg); ok && n <= len(v.items) {
			return v, v.open(v.items[n-1])
		}
		switch {
		case key.Matches(msg, v.keys.Up):
			v.cursor.MoveUp()
		case key.Matches(msg, v.keys.Down):
			v.cursor.MoveDown()
		case key.Matches(msg, v.keys.Enter):
			return v, v.open(v.items[v.cursor.Selected()])
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		}
	}
	return v, nil
}

func (v *View) open(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// digit reports a single 1-9 key press.
func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("DocuFlow"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Invoice and contract compliance"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i == v.cursor.Selected() {
			b.WriteString("> " + v.styles.Title.Render(label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		if item.Description != "" {
			b.WriteString("  " + v.styles.Muted.Render(item.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [1-6/Enter] Open  [ctrl+t] Theme  [q] Quit"))
	return b.String()
}

// SetDimensions records the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the highlighted row.
func (v *View) Selected() int {
	return v.cursor.Selected()
}
