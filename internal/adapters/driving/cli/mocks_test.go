package cli

import (
	"bytes"
	"context"
	"slices"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

func float(v float64) *float64 {
	return &v
}

// MockInvoiceService implements driving.InvoiceService for CLI tests.
type MockInvoiceService struct {
	ListFunc  func(ctx context.Context, page int) (*driving.InvoicePageView, error)
	GetFunc   func(ctx context.Context, id int64) (*domain.Invoice, error)
	QueryFunc func(ctx context.Context, id int64, question string) (string, error)
	OpenFunc  func(ctx context.Context, id int64) (string, error)

	selection []int64
	questions []string
}

func (m *MockInvoiceService) List(ctx context.Context, page int) (*driving.InvoicePageView, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page)
	}
	return &driving.InvoicePageView{
		Invoices: []domain.Invoice{
			{
				ID: 1, InvoiceID: "INV-001", SellerName: "Acme Supplies",
				SubtotalAmount: float(1234.5), RiskPercentage: domain.RiskOf(45.67),
			},
			{ID: 2, InvoiceID: "INV-002", SellerName: "Globex", TaxID: "DE123"},
		},
		Page:       page,
		Total:      12,
		TotalPages: 2,
	}, nil
}

func (m *MockInvoiceService) Cached() (*driving.InvoicePageView, bool) { return nil, false }

func (m *MockInvoiceService) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Invoice{
		ID: id, InvoiceID: "INV-001", SellerName: "Acme Supplies", TaxID: "US-77",
		SubtotalAmount: float(1234.5), TaxAmount: float(98.76),
		RiskPercentage: domain.RiskOf(45.67), Summary: "Office supplies for March.",
	}, nil
}

func (m *MockInvoiceService) Query(ctx context.Context, id int64, question string) (string, error) {
	m.questions = append(m.questions, question)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, id, question)
	}
	return "The total is $1,234.50.", nil
}

func (m *MockInvoiceService) DownloadURL(_ context.Context, id int64) (string, error) {
	return "https://files.example.com/invoice.pdf", nil
}

func (m *MockInvoiceService) Open(ctx context.Context, id int64) (string, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, id)
	}
	return "https://files.example.com/invoice.pdf", nil
}

func (m *MockInvoiceService) Selection() []int64 { return slices.Clone(m.selection) }

func (m *MockInvoiceService) Select(ids ...int64) {
	for _, id := range ids {
		if !slices.Contains(m.selection, id) {
			m.selection = append(m.selection, id)
		}
	}
}

func (m *MockInvoiceService) Unselect(ids ...int64) {
	m.selection = slices.DeleteFunc(m.selection, func(id int64) bool {
		return slices.Contains(ids, id)
	})
}

func (m *MockInvoiceService) ToggleSelect(id int64) bool {
	if slices.Contains(m.selection, id) {
		m.Unselect(id)
		return false
	}
	m.Select(id)
	return true
}

func (m *MockInvoiceService) ClearSelection() { m.selection = nil }

// MockContractService implements driving.ContractService for CLI tests.
type MockContractService struct {
	ListFunc func(ctx context.Context, page int) (*driving.ContractPageView, error)
}

func (m *MockContractService) List(ctx context.Context, page int) (*driving.ContractPageView, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page)
	}
	return &driving.ContractPageView{
		Contracts: []domain.Contract{
			{ID: 7, ContractID: "CT-7", Summary: "Supply agreement", CreatedAt: "2025-03-11T10:00:00Z"},
		},
		Page:       page,
		Total:      1,
		TotalPages: 1,
	}, nil
}

func (m *MockContractService) Cached() (*driving.ContractPageView, bool) { return nil, false }

func (m *MockContractService) Get(_ context.Context, id int64) (*domain.Contract, error) {
	return &domain.Contract{ID: id, ContractID: "CT-7", Text: "Unit price is fixed at 12.50 USD."}, nil
}

func (m *MockContractService) Query(context.Context, int64, string) (string, error) {
	return "Net 30.", nil
}

func (m *MockContractService) DownloadURL(context.Context, int64) (string, error) {
	return "https://files.example.com/contract.pdf", nil
}

func (m *MockContractService) Open(context.Context, int64) (string, error) {
	return "https://files.example.com/contract.pdf", nil
}

// MockUploadService implements driving.UploadService for CLI tests.
type MockUploadService struct {
	ValidateErr error
	UploadErr   error
	Result      *domain.UploadResult
	uploaded    []domain.UploadRequest
}

func (m *MockUploadService) Validate(domain.UploadRequest) error { return m.ValidateErr }

func (m *MockUploadService) Upload(_ context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	m.uploaded = append(m.uploaded, req)
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &domain.UploadResult{Success: true, Message: "Invoice uploaded"}, nil
}

func (m *MockUploadService) Watch(
	_ context.Context, dir string, docType domain.DocumentType, onResult func(string, *domain.UploadResult, error),
) error {
	onResult(dir+"/a.pdf", &domain.UploadResult{Success: true}, nil)
	onResult(dir+"/b.pdf", nil, domain.ErrFileTooLarge)
	return nil
}

// MockWorkflowService implements driving.WorkflowService for CLI tests.
type MockWorkflowService struct {
	Err error
	ran [][]int64
}

func (m *MockWorkflowService) Run(_ context.Context, ids []int64) (*domain.WorkflowBatch, error) {
	m.ran = append(m.ran, ids)
	if m.Err != nil {
		return nil, m.Err
	}
	return sampleBatch(), nil
}

// MockReportService implements driving.ReportService for CLI tests.
type MockReportService struct {
	Batch     *domain.WorkflowBatch
	ExportErr error
	exported  []string
	cleared   bool
}

func (m *MockReportService) Current() (*domain.WorkflowBatch, *domain.ReportSummary, error) {
	if m.Batch == nil {
		return nil, nil, domain.ErrNoReport
	}
	summary := services.Summarize(*m.Batch)
	return m.Batch, &summary, nil
}

func (m *MockReportService) Invoice(id string) (*domain.InvoiceGroup, error) {
	if m.Batch == nil {
		return nil, domain.ErrNoReport
	}
	for _, g := range services.GroupByInvoice(*m.Batch) {
		if g.InvoiceID == id {
			return &g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockReportService) Groups() ([]domain.InvoiceGroup, error) {
	if m.Batch == nil {
		return nil, domain.ErrNoReport
	}
	return services.GroupByInvoice(*m.Batch), nil
}

func (m *MockReportService) MistakesStatus(inv domain.Invoice) domain.MistakesStatus {
	if inv.InvoiceID == "INV-001" {
		return domain.MistakesFound
	}
	return domain.MistakesNotChecked
}

func (m *MockReportService) Export(_ context.Context, path string) error {
	m.exported = append(m.exported, path)
	return m.ExportErr
}

func (m *MockReportService) Clear() {
	m.cleared = true
	m.Batch = nil
}

// MockDashboardService implements driving.DashboardService for CLI tests.
type MockDashboardService struct {
	Health domain.HealthState
	Errors map[string]error
}

func (m *MockDashboardService) Load(context.Context) (*driving.DashboardView, error) {
	return &driving.DashboardView{
		Invoices:      []domain.Invoice{{ID: 1, InvoiceID: "INV-001", CreatedAt: "2025-03-11T10:00:00Z"}},
		InvoiceTotal:  12,
		ContractTotal: 3,
		Health:        m.CheckHealth(context.Background()),
		Errors:        m.Errors,
	}, nil
}

func (m *MockDashboardService) Cached() (*driving.DashboardView, bool) { return nil, false }

func (m *MockDashboardService) CheckHealth(context.Context) domain.HealthState {
	if m.Health == "" {
		return domain.HealthHealthy
	}
	return m.Health
}

func (m *MockDashboardService) RecentUploads(view *driving.DashboardView, query string) []domain.RecentUpload {
	return services.RecentUploads(view.Invoices, view.Contracts, query, domain.RecentUploadsLimit)
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct {
	settings domain.AppSettings
	SetErr   error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *MockSettingsService) Set(key, value string) error { return m.SetErr }

func (m *MockSettingsService) Keys() []string { return []string{"api.base_url", "storage.backend"} }

func (m *MockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *MockSettingsService) ConfigPath() string { return "/home/test/.docuflow/config.toml" }

// MockThemeService implements driving.ThemeService for CLI tests.
type MockThemeService struct {
	theme domain.Theme
}

func (m *MockThemeService) Theme() domain.Theme {
	if m.theme == "" {
		return domain.ThemeLight
	}
	return m.theme
}

func (m *MockThemeService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return domain.ErrInvalidTheme
	}
	m.theme = theme
	return nil
}

func (m *MockThemeService) Toggle() domain.Theme {
	m.theme = m.Theme().Toggle()
	return m.theme
}

func sampleBatch() *domain.WorkflowBatch {
	return &domain.WorkflowBatch{
		GeneratedAt: "2025-03-14T09:00:00Z",
		Invoices: []domain.WorkflowReport{
			{
				InvoiceID: "INV-001",
				Status:    "processed",
				Violations: []domain.Violation{
					{
						ViolationType:   "Price mismatch",
						LineID:          "L1",
						ExpectedPrice:   float(12.5),
						ActualPrice:     float(14),
						ClauseReference: domain.ClauseReference{Text: "4.2"},
					},
				},
				EvaluationSummary: &domain.EvaluationSummary{LineItemsEvaluated: 3, RulesEvaluated: 5},
				ContractClauses: []domain.ContractClause{
					{ContractID: "CT-7", ClauseID: "4.2", Text: "Unit price is fixed.", Similarity: float(0.91)},
				},
				NextRunScheduledInHours: float(24),
				RiskPercentage:          domain.RiskOf(45.67),
			},
			{InvoiceID: "INV-002", Status: "processed", RiskPercentage: domain.RiskOf(0)},
		},
	}
}

// testServices is the set installed by setupTestServices.
type testServices struct {
	invoices  *MockInvoiceService
	contracts *MockContractService
	upload    *MockUploadService
	workflow  *MockWorkflowService
	reports   *MockReportService
	dashboard *MockDashboardService
	settings  *MockSettingsService
	theme     *MockThemeService
}

// setupTestServices installs mocks and returns them with a cleanup that
// restores the previous services and flag values.
func setupTestServices() (*testServices, func()) {
	prev := Services{
		Invoices:      invoiceService,
		Contracts:     contractService,
		Upload:        uploadService,
		Workflow:      workflowService,
		Reports:       reportService,
		Dashboard:     dashboardService,
		Settings:      settingsService,
		Theme:         themeService,
		Notifications: notifications,
	}
	prevTerminal := isTerminal
	prevInit := initializer

	ts := &testServices{
		invoices:  &MockInvoiceService{},
		contracts: &MockContractService{},
		upload:    &MockUploadService{},
		workflow:  &MockWorkflowService{},
		reports:   &MockReportService{},
		dashboard: &MockDashboardService{},
		settings:  &MockSettingsService{settings: domain.DefaultAppSettings()},
		theme:     &MockThemeService{},
	}
	SetServices(Services{
		Invoices:  ts.invoices,
		Contracts: ts.contracts,
		Upload:    ts.upload,
		Workflow:  ts.workflow,
		Reports:   ts.reports,
		Dashboard: ts.dashboard,
		Settings:  ts.settings,
		Theme:     ts.theme,
	})
	isTerminal = func() bool { return false }
	initializer = nil

	return ts, func() {
		SetServices(prev)
		isTerminal = prevTerminal
		initializer = prevInit
		resetFlags()
	}
}

func resetFlags() {
	invoicePage = 1
	invoiceSearch = ""
	invoiceUnselectAll = false
	contractPage = 1
	contractSearch = ""
	dashboardSearch = ""
	uploadType = string(domain.DocumentTypeInvoice)
	rootCmd.SetArgs(nil)
}

// execute runs the root command with args and returns combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
