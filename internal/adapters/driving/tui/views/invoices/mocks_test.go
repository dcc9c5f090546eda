package invoices

import (
	"context"
	"slices"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

type mockInvoiceService struct {
	pages     map[int]*driving.InvoicePageView
	cached    *driving.InvoicePageView
	listErr   error
	answer    string
	queryErr  error
	openURL   string
	openErr   error
	selection []int64

	listCalls []int
	questions []string
	opened    []int64
}

func (m *mockInvoiceService) List(_ context.Context, page int) (*driving.InvoicePageView, error) {
	m.listCalls = append(m.listCalls, page)
	if m.listErr != nil {
		return nil, m.listErr
	}
	p := m.pages[page]
	m.cached = p
	return p, nil
}

func (m *mockInvoiceService) Cached() (*driving.InvoicePageView, bool) {
	return m.cached, m.cached != nil
}

func (m *mockInvoiceService) Get(_ context.Context, id int64) (*domain.Invoice, error) {
	return &domain.Invoice{ID: id}, nil
}

func (m *mockInvoiceService) Query(_ context.Context, _ int64, question string) (string, error) {
	m.questions = append(m.questions, question)
	return m.answer, m.queryErr
}

func (m *mockInvoiceService) DownloadURL(_ context.Context, _ int64) (string, error) {
	return m.openURL, m.openErr
}

func (m *mockInvoiceService) Open(_ context.Context, id int64) (string, error) {
	m.opened = append(m.opened, id)
	return m.openURL, m.openErr
}

func (m *mockInvoiceService) Selection() []int64 {
	return slices.Clone(m.selection)
}

func (m *mockInvoiceService) Select(ids ...int64) {
	for _, id := range ids {
		if !slices.Contains(m.selection, id) {
			m.selection = append(m.selection, id)
		}
	}
}

func (m *mockInvoiceService) Unselect(ids ...int64) {
	m.selection = slices.DeleteFunc(m.selection, func(id int64) bool {
		return slices.Contains(ids, id)
	})
}

func (m *mockInvoiceService) ToggleSelect(id int64) bool {
	if slices.Contains(m.selection, id) {
		m.Unselect(id)
		return false
	}
	m.Select(id)
	return true
}

func (m *mockInvoiceService) ClearSelection() {
	m.selection = nil
}

type mockWorkflowService struct {
	batch *domain.WorkflowBatch
	err   error
	ran   [][]int64
}

func (m *mockWorkflowService) Run(_ context.Context, ids []int64) (*domain.WorkflowBatch, error) {
	m.ran = append(m.ran, ids)
	return m.batch, m.err
}

type mockReportService struct {
	status map[int64]domain.MistakesStatus
}

func (m *mockReportService) Current() (*domain.WorkflowBatch, *domain.ReportSummary, error) {
	return nil, nil, domain.ErrNoReport
}

func (m *mockReportService) Invoice(string) (*domain.InvoiceGroup, error) {
	return nil, domain.ErrNotFound
}

func (m *mockReportService) Groups() ([]domain.InvoiceGroup, error) {
	return nil, domain.ErrNoReport
}

func (m *mockReportService) MistakesStatus(inv domain.Invoice) domain.MistakesStatus {
	if s, ok := m.status[inv.ID]; ok {
		return s
	}
	return domain.MistakesNotChecked
}

func (m *mockReportService) Export(context.Context, string) error {
	return nil
}

func (m *mockReportService) Clear() {}

func float(v float64) *float64 {
	return &v
}

func samplePages() map[int]*driving.InvoicePageView {
	return map[int]*driving.InvoicePageView{
		1: {
			Invoices: []domain.Invoice{
				{ID: 1, InvoiceID: "INV-001", SellerName: "Acme Supplies", SubtotalAmount: float(1234.5), RiskPercentage: domain.RiskOf(45.67)},
				{ID: 2, InvoiceID: "INV-002", SellerName: "Globex", Summary: "Cloud hosting", TaxID: "DE123"},
				{ID: 3, InvoiceID: "INV-003", SellerName: "Initech"},
			},
			Page: 1, Total: 13, TotalPages: 2,
		},
		2: {
			Invoices: []domain.Invoice{
				{ID: 11, InvoiceID: "INV-011", SellerName: "Umbrella"},
			},
			Page: 2, Total: 13, TotalPages: 2,
		},
	}
}
