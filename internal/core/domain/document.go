package domain

// DocumentType identifies the kind of document stored by the backend.
type DocumentType string

// Available document types.
const (
	// DocumentTypeInvoice is a supplier invoice.
	DocumentTypeInvoice DocumentType = "invoice"

	// DocumentTypeContract is a supply contract.
	DocumentTypeContract DocumentType = "contract"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypeContract
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Invoice is an invoice record owned by the backend.
// The client never deletes one; a workflow run only enriches RiskPercentage.
type Invoice struct {
	// ID is the server-assigned database identifier. It is the stable identity.
	ID int64 `json:"id"`

	// InvoiceID is the display number printed on the invoice.
	// It is not guaranteed unique and may be empty.
	InvoiceID string `json:"invoice_id,omitempty"`

	SellerName    string `json:"seller_name,omitempty"`
	SellerAddress string `json:"seller_address,omitempty"`
	TaxID         string `json:"tax_id,omitempty"`

	// SubtotalAmount and TaxAmount are nil when extraction found no value.
	SubtotalAmount *float64 `json:"subtotal_amount,omitempty"`
	TaxAmount      *float64 `json:"tax_amount,omitempty"`

	Summary string `json:"summary,omitempty"`

	// RiskPercentage is attached after a workflow run.
	RiskPercentage RiskPercentage `json:"risk_percentage,omitzero"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	// Extra holds backend fields not modelled above, such as line items.
	// The decoder fills it from unknown top-level keys.
	Extra map[string]any `json:"extra,omitempty"`
}

// Contract is a contract record owned by the backend.
type Contract struct {
	ID         int64  `json:"id"`
	ContractID string `json:"contract_id,omitempty"`
	Summary    string `json:"summary,omitempty"`

	// Text is the full contract body.
	Text string `json:"text,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	Extra map[string]any `json:"extra,omitempty"`
}

// PageSize is the number of rows fetched per list page.
const PageSize = 10

// PageOffset returns the zero-based row offset of a one-based page number.
// Pages below 1 are treated as page 1.
func PageOffset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// TotalPages returns the number of pages needed for total rows.
// There is always at least one page.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ListParams bounds a paginated list request.
type ListParams struct {
	Limit  int
	Offset int
}

// InvoicePage is one page of invoices as returned by the backend.
type InvoicePage struct {
	Invoices []Invoice `json:"invoices"`
	Count    int       `json:"count"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// ContractPage is one page of contracts as returned by the backend.
type ContractPage struct {
	Contracts []Contract `json:"contracts"`
	Count     int        `json:"count"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// DownloadURL is a presigned link to a stored PDF.
type DownloadURL struct {
	Success bool   `json:"success"`
	URL     string `json:"presigned_url"`
}
