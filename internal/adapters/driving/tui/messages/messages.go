// Package messages defines Bubbletea message types for the TUI.
// Async service calls run as tea.Cmds and report back with one of these.
package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDashboard shows counts, health and recent uploads.
	ViewDashboard
	// ViewInvoices lists invoices and runs the workflow.
	ViewInvoices
	// ViewContracts lists contracts.
	ViewContracts
	// ViewUpload sends a PDF to the backend.
	ViewUpload
	// ViewReports shows the last workflow report.
	ViewReports
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDashboard:
		return "dashboard"
	case ViewInvoices:
		return "invoices"
	case ViewContracts:
		return "contracts"
	case ViewUpload:
		return "upload"
	case ViewReports:
		return "reports"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Notified carries a toast for the status bar.
type Notified struct {
	Notification domain.Notification
}

// Notify returns a command that raises a toast.
func Notify(level domain.NotificationLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return Notified{Notification: domain.Notification{Level: level, Message: text}}
	}
}

// ToastExpired clears the toast with the matching sequence number.
type ToastExpired struct {
	Seq int
}

// ThemeChanged is sent after the colour scheme is toggled.
type ThemeChanged struct {
	Theme domain.Theme
}

// DashboardLoaded carries the dashboard cards.
type DashboardLoaded struct {
	View *driving.DashboardView
	Err  error
}

// HealthTick triggers a health poll. Gen ties the tick to the
// dashboard session that scheduled it.
type HealthTick struct {
	Gen int
}

// HealthChecked carries the result of a health poll.
type HealthChecked struct {
	Gen    int
	Health domain.HealthState
}

// InvoicesLoaded carries one page of invoices.
type InvoicesLoaded struct {
	Page *driving.InvoicePageView
	Err  error
}

// ContractsLoaded carries one page of contracts.
type ContractsLoaded struct {
	Page *driving.ContractPageView
	Err  error
}

// QueryAnswered carries the answer to an inline question about a document.
type QueryAnswered struct {
	DocumentType domain.DocumentType
	ID           int64
	Answer       string
	Err          error
}

// DocumentOpened is sent after a document was opened in the browser.
type DocumentOpened struct {
	DocumentType domain.DocumentType
	URL          string
	Err          error
}

// ProgressTicked advances a simulated progress bar owned by View. Seq ties
// the tick to the operation that started it so stale ticks are dropped.
type ProgressTicked struct {
	View    ViewType
	Seq     int
	Percent float64
}

// WorkflowCompleted carries the batch produced by a workflow run.
type WorkflowCompleted struct {
	Batch *domain.WorkflowBatch
	Err   error
}

// UploadCompleted carries the backend's response to an upload.
type UploadCompleted struct {
	Path   string
	Result *domain.UploadResult
	Err    error
}

// ReportExported is sent after the report workbook was written.
type ReportExported struct {
	Path string
	Err  error
}

// ErrorOccurred is sent when an error occurs.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
