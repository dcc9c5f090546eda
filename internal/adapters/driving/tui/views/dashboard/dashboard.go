// Package dashboard provides the dashboard view: document counts, backend
// health with a periodic poll, and the most recent uploads.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

// HealthInterval is the period of the backend health poll.
const HealthInterval = 30 * time.Second

var errServiceUnavailable = errors.New("dashboard service not available")

// View is the dashboard view.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keys    *keymap.KeyMap
	service driving.DashboardService

	data    *driving.DashboardView
	recent  []domain.RecentUpload
	search  *input.Field
	spinner spinner.Model
	loading bool
	err     error

	// gen identifies the current dashboard session. Health ticks from an
	// earlier session are dropped so only one poll loop is alive.
	gen int

	width  int
	height int
	ready  bool
}

// NewView creates a new dashboard view.
func NewView(s *styles.Styles, service driving.DashboardService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &View{
		ctx:     context.Background(),
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		service: service,
		search:  input.NewField(s, "Search", "Filter recent uploads..."),
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init shows the cached dashboard, reloads it and starts the health poll.
func (v *View) Init() tea.Cmd {
	v.gen++
	v.err = nil
	if v.service != nil {
		if cached, ok := v.service.Cached(); ok {
			v.data = cached
			v.refreshRecent()
		}
	}
	v.loading = true
	return tea.Batch(v.spinner.Tick, v.load(), v.scheduleHealth())
}

func (v *View) load() tea.Cmd {
	service := v.service
	ctx := v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.DashboardLoaded{Err: errServiceUnavailable}
		}
		data, err := service.Load(ctx)
		return messages.DashboardLoaded{View: data, Err: err}
	}
}

func (v *View) scheduleHealth() tea.Cmd {
	gen := v.gen
	return tea.Tick(HealthInterval, func(time.Time) tea.Msg {
		return messages.HealthTick{Gen: gen}
	})
}

func (v *View) checkHealth(gen int) tea.Cmd {
	service := v.service
	ctx := v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.HealthChecked{Gen: gen, Health: domain.HealthDown}
		}
		return messages.HealthChecked{Gen: gen, Health: service.CheckHealth(ctx)}
	}
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DashboardLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.data = msg.View
		v.refreshRecent()
		return v, nil

	case messages.HealthTick:
		if msg.Gen != v.gen {
			return v, nil
		}
		return v, v.checkHealth(msg.Gen)

	case messages.HealthChecked:
		if msg.Gen != v.gen {
			return v, nil
		}
		if v.data == nil {
			v.data = &driving.DashboardView{}
		}
		v.data.Health = msg.Health
		return v, v.scheduleHealth()

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.search.Focused() {
		switch {
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
			v.search.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.refreshRecent()
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Search):
		return v, v.search.Focus()
	case key.Matches(msg, v.keys.Refresh):
		v.loading = true
		return v, tea.Batch(v.spinner.Tick, v.load())
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) refreshRecent() {
	if v.service == nil {
		v.recent = nil
		return
	}
	v.recent = v.service.RecentUploads(v.data, v.search.TrimmedValue())
}

// View renders the dashboard.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Dashboard"))
	if v.loading {
		b.WriteString("  " + v.spinner.View() + v.styles.Muted.Render(" Loading..."))
	}
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.data == nil {
		if !v.loading {
			b.WriteString(v.styles.Muted.Render("No dashboard data. Press r to refresh."))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(v.renderCards())
	b.WriteString("\n\n")
	b.WriteString(v.search.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderRecent())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[/] Search  [r] Refresh  [esc] Back"))

	return b.String()
}

func (v *View) renderCards() string {
	health := v.styles.Health(v.data.Health)
	if v.data.LastChecked != "" {
		health += "\n" + v.styles.Muted.Render("checked "+v.data.LastChecked)
	}

	cards := []string{
		v.card("Invoices", fmt.Sprintf("%d", v.data.InvoiceTotal), services.CardInvoices),
		v.card("Contracts", fmt.Sprintf("%d", v.data.ContractTotal), services.CardContracts),
		v.card("Documents", fmt.Sprintf("%d", v.data.TotalDocuments()), ""),
		v.card("Backend", health, ""),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (v *View) card(title, body, errKey string) string {
	content := v.styles.Muted.Render(title) + "\n" + v.styles.Normal.Bold(true).Render(body)
	if err, ok := v.data.Errors[errKey]; ok && err != nil {
		content += "\n" + v.styles.Error.Render("unavailable")
	}
	return v.styles.Card.Render(content)
}

func (v *View) renderRecent() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Recent uploads"))
	b.WriteString("\n")

	if len(v.recent) == 0 {
		b.WriteString(v.styles.Muted.Render("No uploads found."))
		b.WriteString("\n")
		return b.String()
	}

	summaryWidth := v.width - 48
	if summaryWidth < 20 {
		summaryWidth = 20
	}
	for _, r := range v.recent {
		line := fmt.Sprintf("%s %s %s %s",
			list.Pad(r.Type.String(), 9),
			list.Pad(r.Label, 20),
			list.Pad(services.FormatDate(r.CreatedAt), 14),
			list.Truncate(r.Summary, summaryWidth),
		)
		b.WriteString(v.styles.Normal.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.search.SetWidth(width)
}

// Data returns the dashboard currently shown.
func (v *View) Data() *driving.DashboardView {
	return v.data
}

// Recent returns the recent uploads currently shown.
func (v *View) Recent() []domain.RecentUpload {
	return v.recent
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
