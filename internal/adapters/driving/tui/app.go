package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/views/contracts"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/views/invoices"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/views/reports"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// notificationReceived wraps a notification read from the client channel.
// It is kept apart from messages.Notified so only channel reads re-arm
// the listener.
type notificationReceived struct {
	notification domain.Notification
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles is shared by every view and mutated in place on theme change.
	styles *styles.Styles
	keys   *keymap.KeyMap

	// notifications carries transport failures reported by the API client.
	notifications <-chan domain.Notification

	menuView      *menu.View
	dashboardView *dashboard.View
	invoicesView  *invoices.View
	contractsView *contracts.View
	uploadView    *upload.View
	reportsView   *reports.View
	statusBar     *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error for display.
	err error

	width  int
	height int
	ready  bool
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	theme := domain.ThemeLight
	if ports.Theme != nil {
		theme = ports.Theme.Theme()
	}
	s := styles.ForTheme(theme)
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keys:          km,
		menuView:      menu.NewView(s),
		dashboardView: dashboard.NewView(s, ports.Dashboard),
		invoicesView:  invoices.NewView(s, ports.Invoices, ports.Workflow, ports.Reports),
		contractsView: contracts.NewView(s, ports.Contracts),
		uploadView:    upload.NewView(s, ports.Upload),
		reportsView:   reports.NewView(s, ports.Reports),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the application and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.dashboardView.SetContext(ctx)
	a.invoicesView.SetContext(ctx)
	a.contractsView.SetContext(ctx)
	a.uploadView.SetContext(ctx)
	a.reportsView.SetContext(ctx)
	return a
}

// WithNotifications sets the channel the status bar toasts from.
func (a *App) WithNotifications(ch <-chan domain.Notification) *App {
	a.notifications = ch
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("DocuFlow"),
		a.menuView.Init(),
		a.listen(),
	)
}

func (a *App) listen() tea.Cmd {
	ch := a.notifications
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationReceived{notification: n}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case notificationReceived:
		return a, tea.Batch(a.statusBar.Notify(msg.notification), a.listen())

	case messages.Notified:
		return a, a.statusBar.Notify(msg.Notification)

	case messages.ToastExpired:
		a.statusBar.Expire(msg.Seq)
		return a, nil

	case messages.ThemeChanged:
		*a.styles = *styles.ForTheme(msg.Theme)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case messages.DashboardLoaded, messages.HealthTick, messages.HealthChecked:
		var cmd tea.Cmd
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.InvoicesLoaded:
		var cmd tea.Cmd
		a.invoicesView, cmd = a.invoicesView.Update(msg)
		return a, cmd

	case messages.ContractsLoaded:
		var cmd tea.Cmd
		a.contractsView, cmd = a.contractsView.Update(msg)
		return a, cmd

	case messages.QueryAnswered:
		return a, a.routeByDocumentType(msg.DocumentType, msg)

	case messages.DocumentOpened:
		return a, a.routeByDocumentType(msg.DocumentType, msg)

	case messages.ProgressTicked:
		var cmd tea.Cmd
		switch msg.View {
		case messages.ViewInvoices:
			a.invoicesView, cmd = a.invoicesView.Update(msg)
		case messages.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
		}
		return a, cmd

	case messages.WorkflowCompleted:
		var invCmd, repCmd tea.Cmd
		a.invoicesView, invCmd = a.invoicesView.Update(msg)
		a.reportsView, repCmd = a.reportsView.Update(msg)
		return a, tea.Batch(invCmd, repCmd)

	case messages.UploadCompleted:
		var cmd tea.Cmd
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case messages.ReportExported:
		var cmd tea.Cmd
		a.reportsView, cmd = a.reportsView.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		// Spinners drop ticks with a foreign ID, so fan out.
		var dCmd, iCmd, cCmd tea.Cmd
		a.dashboardView, dCmd = a.dashboardView.Update(msg)
		a.invoicesView, iCmd = a.invoicesView.Update(msg)
		a.contractsView, cCmd = a.contractsView.Update(msg)
		return a, tea.Batch(dCmd, iCmd, cCmd)
	}

	return a, a.updateCurrent(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	if key.Matches(msg, a.keys.Theme) {
		return a, a.toggleTheme()
	}
	return a, a.updateCurrent(msg)
}

func (a *App) toggleTheme() tea.Cmd {
	if a.ports.Theme == nil {
		return nil
	}
	theme := a.ports.Theme.Toggle()
	*a.styles = *styles.ForTheme(theme)
	return messages.Notify(domain.NotifyInfo, fmt.Sprintf("Theme: %s", theme))
}

func (a *App) routeByDocumentType(t domain.DocumentType, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch t {
	case domain.DocumentTypeInvoice:
		a.invoicesView, cmd = a.invoicesView.Update(msg)
	case domain.DocumentTypeContract:
		a.contractsView, cmd = a.contractsView.Update(msg)
	}
	return cmd
}

func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.err = nil

	switch view {
	case messages.ViewMenu:
		return a.menuView.Init()
	case messages.ViewDashboard:
		return a.dashboardView.Init()
	case messages.ViewInvoices:
		return a.invoicesView.Init()
	case messages.ViewContracts:
		return a.contractsView.Init()
	case messages.ViewUpload:
		return a.uploadView.Init()
	case messages.ViewReports:
		return a.reportsView.Init()
	}
	return nil
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case messages.ViewInvoices:
		a.invoicesView, cmd = a.invoicesView.Update(msg)
	case messages.ViewContracts:
		a.contractsView, cmd = a.contractsView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewReports:
		a.reportsView, cmd = a.reportsView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var content string
	switch a.currentView {
	case messages.ViewMenu:
		content = a.menuView.View()
	case messages.ViewDashboard:
		content = a.dashboardView.View()
	case messages.ViewInvoices:
		content = a.invoicesView.View()
	case messages.ViewContracts:
		content = a.contractsView.View()
	case messages.ViewUpload:
		content = a.uploadView.View()
	case messages.ViewReports:
		content = a.reportsView.View()
	default:
		content = "Unknown view"
	}

	if a.err != nil {
		content += "\n" + a.styles.Error.Render("Error: "+a.err.Error())
	}

	return content + "\n" + a.statusBar.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the currently active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the current error, if any.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// Styles returns the shared styles.
func (a *App) Styles() *styles.Styles {
	return a.styles
}

// Toast returns the notification shown in the status bar, if any.
func (a *App) Toast() (domain.Notification, bool) {
	return a.statusBar.Toast()
}

// SetDimensions sets the window size and forwards it to every view,
// reserving the bottom line for the status bar.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := max(height-1, 1)
	a.menuView.SetDimensions(width, body)
	a.dashboardView.SetDimensions(width, body)
	a.invoicesView.SetDimensions(width, body)
	a.contractsView.SetDimensions(width, body)
	a.uploadView.SetDimensions(width, body)
	a.reportsView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}
