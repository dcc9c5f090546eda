// Package reports provides the reports view over the last workflow batch:
// the aggregate summary, the ranked violations and clauses, and a
// per-invoice drill-down.
package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

// ClearedMessage is the toast shown after the report is removed.
const ClearedMessage = "Report data cleared."

var errServiceUnavailable = errors.New("report service not available")

// View is the reports view.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keys    *keymap.KeyMap
	service driving.ReportService

	batch   *domain.WorkflowBatch
	summary *domain.ReportSummary
	groups  []domain.InvoiceGroup
	cursor  list.Cursor

	drill    *domain.InvoiceGroup
	detail   viewport.Model
	export   *input.Field
	err      error
	exported string

	width  int
	height int
	ready  bool
}

// NewView creates a new reports view.
func NewView(s *styles.Styles, service driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		ctx:     context.Background(),
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		service: service,
		detail:  viewport.New(76, 16),
		export:  input.NewField(s, "Export to", "docuflow-report.xlsx"),
		width:   80,
		height:  24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init reloads the stored report.
func (v *View) Init() tea.Cmd {
	v.drill = nil
	v.exported = ""
	v.export.Blur()
	v.refresh()
	return nil
}

func (v *View) refresh() {
	v.batch, v.summary, v.groups = nil, nil, nil
	v.err = nil
	if v.service == nil {
		v.err = errServiceUnavailable
		v.cursor.SetLen(0)
		return
	}

	batch, summary, err := v.service.Current()
	switch {
	case errors.Is(err, domain.ErrNoReport):
	case err != nil:
		v.err = err
	default:
		v.batch = batch
		v.summary = summary
		if groups, gErr := v.service.Groups(); gErr == nil {
			v.groups = groups
		}
	}
	v.cursor.SetLen(len(v.groups))
}

// Update handles messages for the reports view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.WorkflowCompleted:
		// A run finished elsewhere; show the new batch next time we render.
		if msg.Err == nil {
			v.refresh()
		}
		return v, nil

	case messages.ReportExported:
		if msg.Err != nil {
			v.err = msg.Err
			return v, messages.Notify(domain.NotifyError, msg.Err.Error())
		}
		v.exported = msg.Path
		return v, messages.Notify(domain.NotifySuccess, "Report exported to "+msg.Path)

	case tea.KeyMsg:
		switch {
		case v.export.Focused():
			return v.handleExportKeyMsg(msg)
		case v.drill != nil:
			return v.handleDrillKeyMsg(msg)
		default:
			return v.handleSummaryKeyMsg(msg)
		}
	}

	return v, nil
}

func (v *View) handleSummaryKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		v.cursor.MoveUp()
	case key.Matches(msg, v.keys.Down):
		v.cursor.MoveDown()
	case key.Matches(msg, v.keys.Enter):
		if len(v.groups) > 0 {
			g := v.groups[v.cursor.Selected()]
			v.drill = &g
			v.detail.SetContent(v.renderGroup(g))
			v.detail.GotoTop()
		}
	case key.Matches(msg, v.keys.Refresh):
		v.refresh()
	case key.Matches(msg, v.keys.Export):
		if v.summary != nil {
			return v, v.export.Focus()
		}
	case key.Matches(msg, v.keys.Clear):
		if v.service != nil && v.summary != nil {
			v.service.Clear()
			v.refresh()
			return v, messages.Notify(domain.NotifySuccess, ClearedMessage)
		}
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) handleDrillKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keys.Back) {
		v.drill = nil
		return v, nil
	}
	var cmd tea.Cmd
	v.detail, cmd = v.detail.Update(msg)
	return v, cmd
}

func (v *View) handleExportKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.export.Blur()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		path := v.export.TrimmedValue()
		if path == "" {
			return v, nil
		}
		v.export.Blur()
		svc := v.service
		ctx := v.ctx
		return v, func() tea.Msg {
			return messages.ReportExported{Path: path, Err: svc.Export(ctx, path)}
		}
	}
	var cmd tea.Cmd
	v.export, cmd = v.export.Update(msg)
	return v, cmd
}

// View renders the reports view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.drill != nil {
		return v.renderDrill()
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Reports"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.summary == nil {
		b.WriteString(v.styles.Muted.Render("No workflow report yet. Select invoices and run the workflow from the Invoices view."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] Refresh  [esc] Back"))
		return b.String()
	}

	b.WriteString(v.renderSummary())
	b.WriteString("\n")
	b.WriteString(v.renderTopViolations())
	b.WriteString("\n")
	b.WriteString(v.renderTopClauses())
	b.WriteString("\n")
	b.WriteString(v.renderGroups())
	b.WriteString("\n")

	if v.export.Focused() {
		b.WriteString(v.export.View())
		b.WriteString("\n\n")
	} else if v.exported != "" {
		b.WriteString(v.styles.Success.Render("Exported to " + v.exported))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] Invoice details  [e] Export  [c] Clear  [r] Refresh  [esc] Back"))
	return b.String()
}

func (v *View) renderSummary() string {
	s := v.summary
	var b strings.Builder

	if s.GeneratedAt != "" {
		b.WriteString(v.styles.Muted.Render("Generated " + services.FormatDateTime(s.GeneratedAt)))
		b.WriteString("\n")
	}

	nextRun := "-"
	if s.AverageNextRunHours != nil {
		nextRun = fmt.Sprintf("%.1f h", *s.AverageNextRunHours)
	}
	rows := []struct{ label, value string }{
		{"Invoices", fmt.Sprintf("%d", s.TotalInvoices)},
		{"Violations", fmt.Sprintf("%d", s.TotalViolations)},
		{"Line items", fmt.Sprintf("%d", s.LineItemsEvaluated)},
		{"Rules", fmt.Sprintf("%d", s.RulesEvaluated)},
		{"Next run", nextRun},
	}
	for _, r := range rows {
		b.WriteString(v.styles.Muted.Render(list.Pad(r.label, 12)))
		b.WriteString(v.styles.Normal.Render(r.value))
		b.WriteString("\n")
	}

	parts := make([]string, 0, len(domain.RiskLevels))
	for _, level := range domain.RiskLevels {
		parts = append(parts, fmt.Sprintf("%s %d", level, s.RiskBreakdown[level]))
	}
	b.WriteString(v.styles.Muted.Render(list.Pad("Risk", 12)))
	b.WriteString(v.styles.Normal.Render(strings.Join(parts, "  ")))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderTopViolations() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Top violations"))
	b.WriteString("\n")
	if len(v.summary.TopViolations) == 0 {
		b.WriteString(v.styles.Success.Render("No violations detected."))
		b.WriteString("\n")
		return b.String()
	}
	for _, tv := range v.summary.TopViolations {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %s %d", list.Pad(tv.Type, 36), tv.Count)))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderTopClauses() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Top clauses"))
	b.WriteString("\n")
	if len(v.summary.TopClauses) == 0 {
		b.WriteString(v.styles.Muted.Render("No contract clauses matched."))
		b.WriteString("\n")
		return b.String()
	}
	textWidth := max(v.width-40, 20)
	for _, c := range v.summary.TopClauses {
		ref := c.ContractID
		if c.ClauseID != "" {
			ref += "/" + c.ClauseID
		}
		line := fmt.Sprintf("  %s %s %s %s",
			list.Pad(services.FormatSimilarity(c.Similarity), 5),
			list.Pad(ref, 14),
			list.Pad(c.InvoiceID, 12),
			list.Truncate(c.Text, textWidth))
		b.WriteString(v.styles.Normal.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderGroups() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Invoices"))
	b.WriteString("\n")
	start, end := v.cursor.Window(max(v.height-30, 3))
	for i := start; i < end; i++ {
		g := v.groups[i]
		violations := 0
		risk := domain.RiskUnknown()
		for _, r := range g.Reports {
			violations += len(r.Violations)
			if !r.RiskPercentage.IsUnknown() {
				risk = r.RiskPercentage
			}
		}
		line := fmt.Sprintf("%s %s %s", list.Pad(g.InvoiceID, 16),
			list.Pad(fmt.Sprintf("%d violation(s)", violations), 16), risk.String())
		if i == v.cursor.Selected() {
			b.WriteString("> " + v.styles.Selected.Render(line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderDrill() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Invoice " + v.drill.InvoiceID))
	b.WriteString("\n\n")
	b.WriteString(v.detail.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] Scroll  [esc] Back"))
	return b.String()
}

// renderGroup renders every run of one invoice for the drill-down viewport.
func (v *View) renderGroup(g domain.InvoiceGroup) string {
	var b strings.Builder
	for i, r := range g.Reports {
		if i > 0 {
			b.WriteString("\n")
		}
		header := fmt.Sprintf("Run %d · %s", i+1, r.Status)
		if r.ProcessedAt != "" {
			header += " · " + services.FormatDateTime(r.ProcessedAt)
		}
		b.WriteString(v.styles.Subtitle.Render(header))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Risk "))
		b.WriteString(v.styles.Risk(r.RiskPercentage))
		b.WriteString(v.styles.Muted.Render(" (" + string(r.RiskPercentage.Level()) + ")"))
		b.WriteString("\n")
		if r.EvaluationSummary != nil {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d line items, %d rules evaluated",
				r.EvaluationSummary.LineItemsEvaluated, r.EvaluationSummary.RulesEvaluated)))
			b.WriteString("\n")
		}

		if len(r.Violations) == 0 {
			b.WriteString(v.styles.Success.Render("No violations"))
			b.WriteString("\n")
		}
		for _, viol := range r.Violations {
			b.WriteString(v.styles.Error.Render("✗ " + viol.ViolationType))
			if viol.LineID != "" {
				b.WriteString(v.styles.Muted.Render(" line " + viol.LineID))
			}
			b.WriteString("\n")
			if viol.ExpectedPrice != nil || viol.ActualPrice != nil {
				b.WriteString(v.styles.Normal.Render(fmt.Sprintf("    expected %s, actual %s, difference %s",
					orDash(services.FormatAmount(viol.ExpectedPrice)),
					orDash(services.FormatAmount(viol.ActualPrice)),
					orDash(services.FormatAmount(viol.Difference)))))
				b.WriteString("\n")
			}
			if ref := viol.ClauseReference.String(); ref != "" {
				b.WriteString(v.styles.Muted.Render("    clause " + ref))
				b.WriteString("\n")
			}
		}

		for _, c := range r.ContractClauses {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %s %s/%s  %s",
				services.FormatSimilarity(c.Similarity), c.ContractID, c.ClauseID,
				list.Truncate(c.Text, max(v.detail.Width-24, 20)))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.export.SetWidth(width)
	v.detail.Width = max(width-4, 40)
	v.detail.Height = max(height-8, 5)
}

// Summary returns the summary shown, or nil when no report exists.
func (v *View) Summary() *domain.ReportSummary {
	return v.summary
}

// Groups returns the per-invoice groups shown.
func (v *View) Groups() []domain.InvoiceGroup {
	return v.groups
}

// Drill returns the invoice group open in the drill-down, if any.
func (v *View) Drill() *domain.InvoiceGroup {
	return v.drill
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
