// Package contracts provides the contracts view: a paginated, searchable
// list with a detail panel and inline questions.
package contracts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
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

var errServiceUnavailable = errors.New("contract service not available")

// View is the contracts view.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keys    *keymap.KeyMap
	service driving.ContractService

	page   *driving.ContractPageView
	rows   []domain.Contract
	cursor list.Cursor
	search *input.Field

	detail   *domain.Contract
	text     viewport.Model
	question *input.Field
	answer   string
	asking   bool

	spinner spinner.Model
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new contracts view.
func NewView(s *styles.Styles, service driving.ContractService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &View{
		ctx:      context.Background(),
		styles:   s,
		keys:     keymap.DefaultKeyMap(),
		service:  service,
		search:   input.NewField(s, "Search", "Filter by id, summary or text..."),
		question: input.NewField(s, "Ask", "Ask a question about this contract..."),
		text:     viewport.New(76, 8),
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
	v.closeDetail()
	v.err = nil
	page := 1
	if v.service != nil {
		if cached, ok := v.service.Cached(); ok {
			v.apply(cached)
			page = cached.Page
		}
	}
	v.loading = true
	return tea.Batch(v.spinner.Tick, v.load(page))
}

func (v *View) load(page int) tea.Cmd {
	svc := v.service
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ContractsLoaded{Err: errServiceUnavailable}
		}
		p, err := svc.List(ctx, page)
		return messages.ContractsLoaded{Page: p, Err: err}
	}
}

func (v *View) apply(p *driving.ContractPageView) {
	v.page = p
	v.refilter()
}

func (v *View) refilter() {
	if v.page == nil {
		v.rows = nil
	} else {
		v.rows = services.FilterContracts(v.page.Contracts, v.search.TrimmedValue())
	}
	v.cursor.SetLen(len(v.rows))
}

// Update handles messages for the contracts view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ContractsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.apply(msg.Page)
		return v, nil

	case messages.QueryAnswered:
		if msg.DocumentType != domain.DocumentTypeContract {
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
		if msg.DocumentType != domain.DocumentTypeContract {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, messages.Notify(domain.NotifyInfo, "Opened contract in browser")

	case spinner.TickMsg:
		if !v.loading && !v.asking {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.detail != nil {
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
	case key.Matches(msg, v.keys.Open):
		if c, ok := v.current(); ok {
			return v, v.open(c.ID)
		}
	case key.Matches(msg, v.keys.Enter):
		if c, ok := v.current(); ok {
			v.showDetail(c)
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
	case key.Matches(msg, v.keys.Back):
		v.closeDetail()
		return v, nil
	}

	// Remaining keys scroll the contract text.
	var cmd tea.Cmd
	v.text, cmd = v.text.Update(msg)
	return v, cmd
}

func (v *View) current() (domain.Contract, bool) {
	if len(v.rows) == 0 {
		return domain.Contract{}, false
	}
	return v.rows[v.cursor.Selected()], true
}

func (v *View) showDetail(c domain.Contract) {
	v.detail = &c
	v.answer = ""
	v.err = nil
	v.question.Reset()
	text := c.Text
	if text == "" {
		text = "No contract text available."
	}
	v.text.SetContent(v.styles.Normal.Width(v.text.Width).Render(text))
	v.text.GotoTop()
}

func (v *View) closeDetail() {
	v.detail = nil
	v.answer = ""
	v.asking = false
	v.question.Reset()
	v.question.Blur()
}

func (v *View) ask() tea.Cmd {
	question := v.question.TrimmedValue()
	if question == "" {
		return messages.Notify(domain.NotifyError, domain.ErrEmptyQuery.Error())
	}
	v.asking = true
	v.answer = ""
	v.question.Blur()

	svc := v.service
	ctx := v.ctx
	id := v.detail.ID
	query := func() tea.Msg {
		if svc == nil {
			return messages.QueryAnswered{DocumentType: domain.DocumentTypeContract, ID: id, Err: errServiceUnavailable}
		}
		answer, err := svc.Query(ctx, id, question)
		return messages.QueryAnswered{DocumentType: domain.DocumentTypeContract, ID: id, Answer: answer, Err: err}
	}
	return tea.Batch(v.spinner.Tick, query)
}

func (v *View) open(id int64) tea.Cmd {
	svc := v.service
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentOpened{DocumentType: domain.DocumentTypeContract, Err: errServiceUnavailable}
		}
		url, err := svc.Open(ctx, id)
		return messages.DocumentOpened{DocumentType: domain.DocumentTypeContract, URL: url, Err: err}
	}
}

// View renders the contracts view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.detail != nil {
		return v.renderDetail()
	}
	return v.renderList()
}

func (v *View) renderList() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Contracts"))
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

	if len(v.rows) == 0 {
		if !v.loading {
			b.WriteString(v.styles.Muted.Render("No contracts found."))
			b.WriteString("\n")
		}
	} else {
		summaryWidth := v.width - 36
		if summaryWidth < 20 {
			summaryWidth = 20
		}
		start, end := v.cursor.Window(v.visibleRows())
		for i := start; i < end; i++ {
			c := v.rows[i]
			line := fmt.Sprintf("%s %s %s",
				list.Pad(contractLabel(c), 14),
				list.Pad(services.FormatDate(c.CreatedAt), 14),
				list.Truncate(c.Summary, summaryWidth))
			if i == v.cursor.Selected() {
				b.WriteString("> " + v.styles.Selected.Render(line))
			} else {
				b.WriteString("  " + v.styles.Normal.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] Details  [o] Open  [n/p] Page  [/] Search  [r] Refresh  [esc] Back"))
	return b.String()
}

func (v *View) renderDetail() string {
	c := v.detail
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Contract " + contractLabel(*c)))
	b.WriteString("\n")
	if created := services.FormatDateTime(c.CreatedAt); created != "" {
		b.WriteString(v.styles.Muted.Render("Uploaded " + created))
		b.WriteString("\n")
	}
	for _, f := range services.ExtraFields(c.Extra) {
		b.WriteString(v.styles.Muted.Render(f.Key + ": "))
		b.WriteString(v.styles.Normal.Render(list.Truncate(f.Value, v.text.Width)))
		b.WriteString("\n")
	}
	if c.Summary != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Width(v.text.Width).Render(c.Summary))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Text"))
	b.WriteString("\n")
	b.WriteString(v.text.View())
	b.WriteString("\n\n")

	b.WriteString(v.question.View())
	b.WriteString("\n")
	switch {
	case v.asking:
		b.WriteString(v.spinner.View() + v.styles.Muted.Render(" Thinking..."))
		b.WriteString("\n")
	case v.answer != "":
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Width(v.text.Width).Render(v.answer))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[a] Ask  [o] Open  [↑/↓] Scroll  [esc] Back"))
	return b.String()
}

func contractLabel(c domain.Contract) string {
	if c.ContractID != "" {
		return c.ContractID
	}
	return fmt.Sprintf("#%d", c.ID)
}

func (v *View) visibleRows() int {
	n := v.height - 12
	if n < 3 {
		n = 3
	}
	return n
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.search.SetWidth(width)
	v.question.SetWidth(width)

	v.text.Width = max(width-4, 40)
	v.text.Height = max(height/3, 5)
}

// Rows returns the contracts shown after filtering.
func (v *View) Rows() []domain.Contract {
	return v.rows
}

// Detail returns the contract shown in the detail panel, if any.
func (v *View) Detail() *domain.Contract {
	return v.detail
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
