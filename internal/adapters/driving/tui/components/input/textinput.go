// Package input provides the labelled text input used for search,
// questions and file paths.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
}

// NewField creates a blurred input with the given label and placeholder.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 50

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
	}
}

// Update forwards messages to the textinput.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input.
func (f *Field) View() string {
	label := f.styles.Subtitle.Render(f.label + ": ")
	field := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the raw input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// TrimmedValue returns the value without surrounding whitespace.
func (f *Field) TrimmedValue() string {
	return strings.TrimSpace(f.textinput.Value())
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus gives the input keyboard focus.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input has focus.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sizes the input to fit next to its label.
func (f *Field) SetWidth(width int) {
	w := width - lipgloss.Width(f.label) - 8
	if w < 20 {
		w = 20
	}
	f.textinput.Width = w
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
