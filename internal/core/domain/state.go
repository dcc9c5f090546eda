package domain

// Fixed keys of the persisted key-value store.
const (
	StorageKeyInvoices      = "invoices_data"
	StorageKeyContracts     = "contracts_data"
	StorageKeyDashboard     = "dashboard_data"
	StorageKeyWorkflowBatch = "invoice_workflow_batch"
	StorageKeyTheme         = "docuflow-theme"
)

// InvoicesState is the last-seen invoices page and selection.
type InvoicesState struct {
	Invoices    []Invoice `json:"invoices"`
	Page        int       `json:"page"`
	Total       int       `json:"total"`
	SelectedIDs []int64   `json:"selected_ids"`
}

// ContractsState is the last-seen contracts page.
type ContractsState struct {
	Contracts []Contract `json:"contracts"`
	Page      int        `json:"page"`
	Total     int        `json:"total"`
}

// DashboardState is the cached dashboard.
type DashboardState struct {
	Invoices       []Invoice   `json:"invoices"`
	Contracts      []Contract  `json:"contracts"`
	InvoiceTotal   int         `json:"invoice_total"`
	ContractTotal  int         `json:"contract_total"`
	Health         HealthState `json:"health"`
	LastHealthTime string      `json:"last_health_check,omitempty"`
}

// RecentUpload is one row of the dashboard's recent uploads list.
type RecentUpload struct {
	Type      DocumentType
	ID        int64
	Label     string
	Summary   string
	CreatedAt string
}

// RecentUploadsLimit caps the dashboard's recent uploads list.
const RecentUploadsLimit = 8
