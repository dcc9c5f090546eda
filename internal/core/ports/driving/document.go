package driving

import (
	"context"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// InvoicePageView is one rendered page of the invoices list.
type InvoicePageView struct {
	Invoices   []domain.Invoice
	Page       int
	Total      int
	TotalPages int
}

// ContractPageView is one rendered page of the contracts list.
type ContractPageView struct {
	Contracts  []domain.Contract
	Page       int
	Total      int
	TotalPages int
}

// InvoiceService backs the invoices page.
type InvoiceService interface {
	// List fetches a one-based page and caches it for warm reopen.
	List(ctx context.Context, page int) (*InvoicePageView, error)

	// Cached returns the last cached page without a network call.
	// The boolean is false when nothing was cached.
	Cached() (*InvoicePageView, bool)

	// Get fetches one invoice by database ID.
	Get(ctx context.Context, id int64) (*domain.Invoice, error)

	// Query asks an AI question and returns a display string.
	Query(ctx context.Context, id int64, question string) (string, error)

	// DownloadURL resolves a presigned link to the invoice PDF.
	DownloadURL(ctx context.Context, id int64) (string, error)

	// Open resolves the PDF link and opens it in the browser.
	Open(ctx context.Context, id int64) (string, error)

	// Selection returns the selected invoice IDs in selection order.
	Selection() []int64

	// Select adds IDs to the selection.
	Select(ids ...int64)

	// Unselect removes IDs from the selection.
	Unselect(ids ...int64)

	// ToggleSelect flips one ID and reports whether it is now selected.
	ToggleSelect(id int64) bool

	// ClearSelection empties the selection.
	ClearSelection()
}

// ContractService backs the contracts page.
type ContractService interface {
	List(ctx context.Context, page int) (*ContractPageView, error)
	Cached() (*ContractPageView, bool)
	Get(ctx context.Context, id int64) (*domain.Contract, error)
	Query(ctx context.Context, id int64, question string) (string, error)
	DownloadURL(ctx context.Context, id int64) (string, error)
	Open(ctx context.Context, id int64) (string, error)
}

// UploadService validates and uploads documents.
type UploadService interface {
	// Validate checks a request without sending it.
	Validate(req domain.UploadRequest) error

	// Upload validates and sends a document.
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error)

	// Watch uploads every PDF that appears in dir until ctx is cancelled.
	// onResult is called once per attempted upload.
	Watch(ctx context.Context, dir string, docType domain.DocumentType, onResult func(path string, result *domain.UploadResult, err error)) error
}
