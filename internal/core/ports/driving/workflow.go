package driving

import (
	"context"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// WorkflowService runs the compliance workflow.
type WorkflowService interface {
	// Run analyses the given invoices, stores the normalised batch,
	// merges risk onto the cached invoices page and clears the selection.
	Run(ctx context.Context, invoiceIDs []int64) (*domain.WorkflowBatch, error)
}

// ReportService reads the stored workflow batch.
type ReportService interface {
	// Current returns the stored batch and its summary, or domain.ErrNoReport.
	Current() (*domain.WorkflowBatch, *domain.ReportSummary, error)

	// Invoice returns every run of one invoice_id, or domain.ErrNotFound.
	Invoice(invoiceID string) (*domain.InvoiceGroup, error)

	// Groups returns every invoice_id group in batch order.
	Groups() ([]domain.InvoiceGroup, error)

	// MistakesStatus reports whether an invoice had violations in the stored batch.
	MistakesStatus(invoice domain.Invoice) domain.MistakesStatus

	// Export writes the stored batch to a spreadsheet.
	Export(ctx context.Context, path string) error

	// Clear removes the stored batch.
	Clear()
}

// DashboardView is the dashboard page.
type DashboardView struct {
	Invoices      []domain.Invoice
	Contracts     []domain.Contract
	InvoiceTotal  int
	ContractTotal int
	Health        domain.HealthState
	LastChecked   string

	// Errors holds one entry per card that failed to load.
	Errors map[string]error
}

// TotalDocuments is invoices plus contracts.
func (d DashboardView) TotalDocuments() int {
	return d.InvoiceTotal + d.ContractTotal
}

// DashboardService backs the dashboard page.
type DashboardService interface {
	// Load fetches every card concurrently and caches the result.
	Load(ctx context.Context) (*DashboardView, error)

	// Cached returns the cached dashboard, if any.
	Cached() (*DashboardView, bool)

	// CheckHealth polls the backend.
	CheckHealth(ctx context.Context) domain.HealthState

	// RecentUploads merges invoices and contracts, filters by query,
	// newest first, capped at domain.RecentUploadsLimit.
	RecentUploads(view *DashboardView, query string) []domain.RecentUpload
}
