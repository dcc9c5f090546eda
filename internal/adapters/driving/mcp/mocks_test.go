package mcp

import (
	"context"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// mockInvoiceService is a mock implementation of driving.InvoiceService.
type mockInvoiceService struct {
	view      *driving.InvoicePageView
	invoice   *domain.Invoice
	answer    string
	selection []int64
	err       error

	lastPage     int
	lastQuestion string
}

func (m *mockInvoiceService) List(_ context.Context, page int) (*driving.InvoicePageView, error) {
	m.lastPage = page
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockInvoiceService) Cached() (*driving.InvoicePageView, bool) {
	return m.view, m.view != nil
}

func (m *mockInvoiceService) Get(_ context.Context, _ int64) (*domain.Invoice, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.invoice, nil
}

func (m *mockInvoiceService) Query(_ context.Context, _ int64, question string) (string, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

func (m *mockInvoiceService) DownloadURL(_ context.Context, _ int64) (string, error) {
	return "", m.err
}

func (m *mockInvoiceService) Open(_ context.Context, _ int64) (string, error) {
	return "", m.err
}

func (m *mockInvoiceService) Selection() []int64 { return m.selection }

func (m *mockInvoiceService) Select(ids ...int64) { m.selection = append(m.selection, ids...) }

func (m *mockInvoiceService) Unselect(_ ...int64) {}

func (m *mockInvoiceService) ToggleSelect(_ int64) bool { return false }

func (m *mockInvoiceService) ClearSelection() { m.selection = nil }

// mockContractService is a mock implementation of driving.ContractService.
type mockContractService struct {
	view     *driving.ContractPageView
	contract *domain.Contract
	answer   string
	err      error
}

func (m *mockContractService) List(_ context.Context, _ int) (*driving.ContractPageView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockContractService) Cached() (*driving.ContractPageView, bool) {
	return m.view, m.view != nil
}

func (m *mockContractService) Get(_ context.Context, _ int64) (*domain.Contract, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.contract, nil
}

func (m *mockContractService) Query(_ context.Context, _ int64, _ string) (string, error) {
	return m.answer, m.err
}

func (m *mockContractService) DownloadURL(_ context.Context, _ int64) (string, error) {
	return "", m.err
}

func (m *mockContractService) Open(_ context.Context, _ int64) (string, error) {
	return "", m.err
}

// mockWorkflowService is a mock implementation of driving.WorkflowService.
type mockWorkflowService struct {
	batch  *domain.WorkflowBatch
	err    error
	gotIDs []int64
}

func (m *mockWorkflowService) Run(_ context.Context, ids []int64) (*domain.WorkflowBatch, error) {
	m.gotIDs = ids
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.batch, nil
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	batch   *domain.WorkflowBatch
	summary *domain.ReportSummary
	groups  []domain.InvoiceGroup
	err     error
}

func (m *mockReportService) Current() (*domain.WorkflowBatch, *domain.ReportSummary, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.batch, m.summary, nil
}

func (m *mockReportService) Invoice(invoiceID string) (*domain.InvoiceGroup, error) {
	for i := range m.groups {
		if m.groups[i].InvoiceID == invoiceID {
			return &m.groups[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockReportService) Groups() ([]domain.InvoiceGroup, error) {
	return m.groups, m.err
}

func (m *mockReportService) MistakesStatus(_ domain.Invoice) domain.MistakesStatus {
	return domain.MistakesNotChecked
}

func (m *mockReportService) Export(_ context.Context, _ string) error { return m.err }

func (m *mockReportService) Clear() {}

// mockDashboardService is a mock implementation of driving.DashboardService.
type mockDashboardService struct {
	health domain.HealthState
}

func (m *mockDashboardService) Load(_ context.Context) (*driving.DashboardView, error) {
	return &driving.DashboardView{Health: m.health}, nil
}

func (m *mockDashboardService) Cached() (*driving.DashboardView, bool) { return nil, false }

func (m *mockDashboardService) CheckHealth(_ context.Context) domain.HealthState { return m.health }

func (m *mockDashboardService) RecentUploads(_ *driving.DashboardView, _ string) []domain.RecentUpload {
	return nil
}

func float(v float64) *float64 { return &v }

func int64p(v int64) *int64 { return &v }
