// Package status provides the status bar and its toast notifications.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 4 * time.Second

// Bar displays the current toast on the left and keybinding hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	hints  []key.Binding
	toast  *domain.Notification
	seq    int
	width  int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// Notify shows a toast and returns the command that expires it.
func (b *Bar) Notify(n domain.Notification) tea.Cmd {
	if n.Message == "" {
		n.Message = domain.FallbackErrorMessage
	}
	b.seq++
	b.toast = &n
	seq := b.seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return messages.ToastExpired{Seq: seq}
	})
}

// Expire clears the toast if it is still the one identified by seq.
func (b *Bar) Expire(seq int) {
	if seq == b.seq {
		b.toast = nil
	}
}

// Toast returns the visible toast, if any.
func (b *Bar) Toast() (domain.Notification, bool) {
	if b.toast == nil {
		return domain.Notification{}, false
	}
	return *b.toast, true
}

// SetHints replaces the keybinding hints. Nil restores the defaults.
func (b *Bar) SetHints(bindings []key.Binding) {
	b.hints = bindings
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	if b.toast == nil {
		return b.styles.Muted.Render("Ready")
	}
	switch b.toast.Level {
	case domain.NotifyError:
		return b.styles.Error.Render("✗ " + b.toast.Message)
	case domain.NotifySuccess:
		return b.styles.Success.Render("✓ " + b.toast.Message)
	default:
		return b.styles.Normal.Render("• " + b.toast.Message)
	}
}

func (b *Bar) renderRight() string {
	bindings := b.hints
	if bindings == nil {
		bindings = b.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
