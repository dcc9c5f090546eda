package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// DocuFlowAPI is the remote DocuFlow backend.
// Implementations own the transport: base URL, timeout and error extraction.
type DocuFlowAPI interface {
	// UploadDocument sends a PDF for extraction.
	UploadDocument(ctx context.Context, file io.Reader, filename string, docType domain.DocumentType) (*domain.UploadResult, error)

	// ListInvoices returns one page of invoices.
	ListInvoices(ctx context.Context, params domain.ListParams) (*domain.InvoicePage, error)

	// GetInvoice returns one invoice by database ID.
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)

	// ListContracts returns one page of contracts.
	ListContracts(ctx context.Context, params domain.ListParams) (*domain.ContractPage, error)

	// GetContract returns one contract by database ID.
	GetContract(ctx context.Context, id int64) (*domain.Contract, error)

	// Health returns the backend status.
	Health(ctx context.Context) (*domain.HealthStatus, error)

	// QueryInvoice asks an AI question about one invoice.
	// The answer is a free-form decoded JSON value.
	QueryInvoice(ctx context.Context, id int64, query string) (any, error)

	// QueryContract asks an AI question about one contract.
	QueryContract(ctx context.Context, id int64, query string) (any, error)

	// AnalyzeInvoices runs the compliance workflow.
	// The result is a decoded JSON value in one of several historical shapes.
	AnalyzeInvoices(ctx context.Context, invoiceIDs []int64) (any, error)

	// DownloadURL returns a presigned link to the stored PDF.
	DownloadURL(ctx context.Context, docType domain.DocumentType, id int64) (*domain.DownloadURL, error)
}
