// Package invoices provides the invoices view: a paginated, searchable
// list with multi-select, a detail panel with inline questions, and the
// compliance workflow run.
package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
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

var errServiceUnavailable = errors.New("invoice service not available")

type mode int

const (
	modeList mode = iota
	modeDetail
)

// View is the invoices view.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keys     *keymap.KeyMap
	invoices driving.InvoiceService
	workflow driving.WorkflowService
	reports  driving.ReportService

	page   *driving.InvoicePageView
	rows   []domain.Invoice
	cursor list.Cursor
	search *input.Field

	mode     mode
	detail   *domain.Invoice
	question *input.Field
	answer   string
	asking   bool

	sim      services.ProgressSimulator
	progress progress.Model
	running  bool
	percent  float64
	seq      int

	spinner spinner.Model
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new invoices view. The workflow and report services
// may be nil, which disables the workflow run and the mistakes column.
func NewView(
	s *styles.Styles,
	invoices driving.InvoiceService,
	workflow driving.WorkflowService,
	reports driving.ReportService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &View{
		ctx:      context.Background(),
		styles:   s,
		keys:     keymap.DefaultKeyMap(),
		invoices: invoices,
		workflow: workflow,
		reports:  reports,
		search:   input.NewField(s, "Search", "Filter by id, seller, summary, tax id or address..."),
		question: input.NewField(s, "Ask", "Ask a question about this invoice..."),
		sim:      services.WorkflowProgress(),
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init shows the cached page and reloads it from the backend.
func (v *View) Init() tea.Cmd {
	v.mode = modeList
	v.err = nil
	page := 1
	if v.invoices != nil {
		if cached, ok := v.invoices.Cached(); ok {
			v.apply(cached)
			page = cached.Page
		}
	}
	v.loading = true
	return tea.Batch(v.spinner.Tick, v.load(page))
}

func (v *View) load(page int) tea.Cmd {
	svc := v.invoices
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.InvoicesLoaded{Err: errServiceUnavailable}
		}
		p, err := svc.List(ctx, page)
		return messages.InvoicesLoaded{Page: p, Err: err}
	}
}

func (v *View) apply(p *driving.InvoicePageView) {
	v.page = p
	v.refilter()
}

func (v *View) refilter() {
	if v.page == nil {
		v.rows = nil
	} else {
		v.rows = services.FilterInvoices(v.page.Invoices, v.search.TrimmedValue())
	}
	v.cursor.SetLen(len(v.rows))
}

// Update handles messages for the invoices view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.InvoicesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.apply(msg.Page)
		return v, nil

	case messages.QueryAnswered:
		if msg.DocumentType != domain.DocumentTypeInvoice {
			return v, nil
		}
		v.asking = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.answer = msg.Answer
		return v, nil

	case messages.DocumentOpened:
		if msg.DocumentType != domain.DocumentTypeInvoice {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, messages.Notify(domain.NotifyInfo, "Opened invoice in browser")

	case messages.ProgressTicked:
		if !v.running || msg.Seq != v.seq {
			return v, nil
		}
		v.percent = msg.Percent
		return v, v.tickProgress()

	case messages.WorkflowCompleted:
		return v.handleWorkflowCompleted(msg)

	case spinner.TickMsg:
		if !v.loading && !v.asking {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.mode == modeDetail {
			return v.handleDetailKeyMsg(msg)
		}
		return v.handleListKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleListKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.search.Focused() {
		if key.Matches(msg, v.keys.Back) || key.Matches(msg, v.keys.Enter) {
			v.search.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.refilter()
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Up):
		v.cursor.MoveUp()
	case key.Matches(msg, v.keys.Down):
		v.cursor.MoveDown()
	case key.Matches(msg, v.keys.NextPage):
		if v.page != nil && v.page.Page < v.page.TotalPages {
			v.loading = true
			return v, tea.Batch(v.spinner.Tick, v.load(v.page.Page+1))
		}
	case key.Matches(msg, v.keys.PrevPage):
		if v.page != nil && v.page.Page > 1 {
			v.loading = true
			return v, tea.Batch(v.spinner.Tick, v.load(v.page.Page-1))
		}
	case key.Matches(msg, v.keys.Refresh):
		page := 1
		if v.page != nil {
			page = v.page.Page
		}
		v.loading = true
		return v, tea.Batch(v.spinner.Tick, v.load(page))
	case key.Matches(msg, v.keys.Search):
		return v, v.search.Focus()
	case key.Matches(msg, v.keys.Toggle):
		if inv, ok := v.current(); ok && v.invoices != nil {
			v.invoices.ToggleSelect(inv.ID)
		}
	case key.Matches(msg, v.keys.ClearSelection):
		if v.invoices != nil {
			v.invoices.ClearSelection()
		}
	case key.Matches(msg, v.keys.Run):
		return v, v.startWorkflow()
	case key.Matches(msg, v.keys.Open):
		if inv, ok := v.current(); ok {
			return v, v.open(inv.ID)
		}
	case key.Matches(msg, v.keys.Enter):
		if inv, ok := v.current(); ok {
			v.showDetail(inv)
		}
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) handleDetailKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.question.Focused() {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.question.Blur()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			return v, v.ask()
		}
		var cmd tea.Cmd
		v.question, cmd = v.question.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Ask):
		return v, v.question.Focus()
	case key.Matches(msg, v.keys.Open):
		return v, v.open(v.detail.ID)
	case key.Matches(msg, v.keys.Toggle):
		if v.invoices != nil {
			v.invoices.ToggleSelect(v.detail.ID)
		}
	case key.Matches(msg, v.keys.Back):
		v.mode = modeList
		v.detail = nil
		v.answer = ""
		v.asking = false
		v.question.Reset()
		v.question.Blur()
	}
	return v, nil
}

func (v *View) current() (domain.Invoice, bool) {
	if len(v.rows) == 0 {
		return domain.Invoice{}, false
	}
	return v.rows[v.cursor.Selected()], true
}

func (v *View) showDetail(inv domain.Invoice) {
	v.mode = modeDetail
	v.detail = &inv
	v.answer = ""
	v.err = nil
	v.question.Reset()
}

func (v *View) ask() tea.Cmd {
	question := v.question.TrimmedValue()
	if question == "" {
		return messages.Notify(domain.NotifyError, domain.ErrEmptyQuery.Error())
	}
	v.asking = true
	v.answer = ""
	v.question.Blur()

	svc := v.invoices
	ctx := v.ctx
	id := v.detail.ID
	query := func() tea.Msg {
		if svc == nil {
			return messages.QueryAnswered{DocumentType: domain.DocumentTypeInvoice, ID: id, Err: errServiceUnavailable}
		}
		answer, err := svc.Query(ctx, id, question)
		return messages.QueryAnswered{DocumentType: domain.DocumentTypeInvoice, ID: id, Answer: answer, Err: err}
	}
	return tea.Batch(v.spinner.Tick, query)
}

func (v *View) open(id int64) tea.Cmd {
	svc := v.invoices
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentOpened{DocumentType: domain.DocumentTypeInvoice, Err: errServiceUnavailable}
		}
		url, err := svc.Open(ctx, id)
		return messages.DocumentOpened{DocumentType: domain.DocumentTypeInvoice, URL: url, Err: err}
	}
}

func (v *View) startWorkflow() tea.Cmd {
	if v.running || v.workflow == nil || v.invoices == nil {
		return nil
	}
	ids := v.invoices.Selection()
	if len(ids) == 0 {
		return messages.Notify(domain.NotifyError, domain.ErrEmptySelection.Error())
	}

	v.running = true
	v.percent = 0
	v.seq++
	v.err = nil

	wf := v.workflow
	ctx := v.ctx
	run := func() tea.Msg {
		batch, err := wf.Run(ctx, ids)
		return messages.WorkflowCompleted{Batch: batch, Err: err}
	}
	return tea.Batch(v.tickProgress(), run)
}

func (v *View) tickProgress() tea.Cmd {
	seq := v.seq
	current := v.percent
	sim := v.sim
	return tea.Tick(sim.Interval, func(time.Time) tea.Msg {
		return messages.ProgressTicked{View: messages.ViewInvoices, Seq: seq, Percent: sim.Next(current)}
	})
}

func (v *View) handleWorkflowCompleted(msg messages.WorkflowCompleted) (*View, tea.Cmd) {
	v.running = false
	if msg.Err != nil {
		v.percent = 0
		v.err = msg.Err
		if errors.Is(msg.Err, domain.ErrEmptySelection) {
			return v, messages.Notify(domain.NotifyError, msg.Err.Error())
		}
		return v, nil
	}

	v.percent = services.ProgressComplete
	if v.invoices != nil {
		if cached, ok := v.invoices.Cached(); ok {
			v.apply(cached)
		}
	}
	return v, messages.Notify(domain.NotifySuccess, services.WorkflowCompletedMessage(msg.Batch))
}

// View renders the invoices view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.mode == modeDetail && v.detail != nil {
		return v.renderDetail()
	}
	return v.renderList()
}

func (v *View) renderList() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Invoices"))
	if v.page != nil {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  page %d of %d · %d total",
			v.page.Page, v.page.TotalPages, v.page.Total)))
	}
	if v.loading {
		b.WriteString("  " + v.spinner.View())
	}
	b.WriteString("\n\n")

	b.WriteString(v.search.View())
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	selected := map[int64]bool{}
	var selection []int64
	if v.invoices != nil {
		selection = v.invoices.Selection()
	}
	for _, id := range selection {
		selected[id] = true
	}

	if len(v.rows) == 0 {
		if !v.loading {
			b.WriteString(v.styles.Muted.Render("No invoices found."))
			b.WriteString("\n")
		}
	} else {
		header := fmt.Sprintf("    %s %s %s %s %s",
			list.Pad("Invoice", 14), list.Pad("Seller", 22), list.Pad("Subtotal", 14),
			list.Pad("Risk", 8), "Mistakes")
		b.WriteString(v.styles.Subtitle.Render(header))
		b.WriteString("\n")

		start, end := v.cursor.Window(v.visibleRows())
		for i := start; i < end; i++ {
			b.WriteString(v.renderRow(v.rows[i], i == v.cursor.Selected(), selected[v.rows[i].ID]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Selected: %d", len(selection))))
	b.WriteString("\n")

	if v.running || v.percent >= services.ProgressComplete {
		b.WriteString(v.styles.Muted.Render("Running workflow "))
		b.WriteString(v.progress.ViewAs(v.percent / 100))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[space] Select  [x] Clear  [w] Run workflow  [enter] Details  [o] Open  [n/p] Page  [/] Search  [esc] Back"))

	return b.String()
}

func (v *View) renderRow(inv domain.Invoice, current, selected bool) string {
	cursor := "  "
	if current {
		cursor = "> "
	}
	check := "[ ]"
	if selected {
		check = "[x]"
	}

	mistakes := domain.MistakesNotChecked
	if v.reports != nil {
		mistakes = v.reports.MistakesStatus(inv)
	}

	text := fmt.Sprintf("%s %s %s",
		list.Pad(invoiceLabel(inv), 14),
		list.Pad(inv.SellerName, 22),
		list.Pad(services.FormatAmount(inv.SubtotalAmount), 14),
	)
	if current {
		text = v.styles.Selected.Render(text)
	} else {
		text = v.styles.Normal.Render(text)
	}

	return cursor + check + " " + text + " " +
		list.Pad(inv.RiskPercentage.String(), 8) + " " + v.styles.Mistakes(mistakes)
}

func (v *View) renderDetail() string {
	inv := v.detail
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Invoice " + invoiceLabel(*inv)))
	b.WriteString("\n\n")

	fields := []struct{ label, value string }{
		{"Seller", inv.SellerName},
		{"Address", inv.SellerAddress},
		{"Tax ID", inv.TaxID},
		{"Subtotal", services.FormatAmount(inv.SubtotalAmount)},
		{"Tax", services.FormatAmount(inv.TaxAmount)},
		{"Created", services.FormatDateTime(inv.CreatedAt)},
	}
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = "-"
		}
		b.WriteString(v.styles.Muted.Render(list.Pad(f.label, 10)))
		b.WriteString(v.styles.Normal.Render(value))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Muted.Render(list.Pad("Risk", 10)))
	b.WriteString(v.styles.Risk(inv.RiskPercentage))
	b.WriteString("\n")
	if v.reports != nil {
		b.WriteString(v.styles.Muted.Render(list.Pad("Mistakes", 10)))
		b.WriteString(v.styles.Mistakes(v.reports.MistakesStatus(*inv)))
		b.WriteString("\n")
	}
	for _, f := range services.ExtraFields(inv.Extra) {
		b.WriteString(v.styles.Muted.Render(list.Pad(f.Key, 10)))
		b.WriteString(" " + v.styles.Normal.Render(list.Truncate(f.Value, v.textWidth()-11)))
		b.WriteString("\n")
	}

	if inv.Summary != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Width(v.textWidth()).Render(inv.Summary))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.question.View())
	b.WriteString("\n")
	switch {
	case v.asking:
		b.WriteString(v.spinner.View() + v.styles.Muted.Render(" Thinking..."))
		b.WriteString("\n")
	case v.answer != "":
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Width(v.textWidth()).Render(v.answer))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[a] Ask  [o] Open  [space] Select  [esc] Back"))
	return b.String()
}

func invoiceLabel(inv domain.Invoice) string {
	if inv.InvoiceID != "" {
		return inv.InvoiceID
	}
	return fmt.Sprintf("#%d", inv.ID)
}

func (v *View) visibleRows() int {
	n := v.height - 14
	if n < 3 {
		n = 3
	}
	return n
}

func (v *View) textWidth() int {
	if v.width < 40 {
		return 40
	}
	return v.width - 4
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.search.SetWidth(width)
	v.question.SetWidth(width)
	w := width - 30
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	v.progress.Width = w
}

// Rows returns the invoices shown after filtering.
func (v *View) Rows() []domain.Invoice {
	return v.rows
}

// Running returns whether a workflow run is in flight.
func (v *View) Running() bool {
	return v.running
}

// Percent returns the progress bar value.
func (v *View) Percent() float64 {
	return v.percent
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
