package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

func sampleInvoices() []domain.Invoice {
	return []domain.Invoice{
		{ID: 1, InvoiceID: "INV-001", SellerName: "Acme Corp", SubtotalAmount: float(100), RiskPercentage: domain.RiskOf(45.67)},
		{ID: 2, InvoiceID: "INV-002", SellerName: "Globex"},
	}
}

func sampleBatch() *domain.WorkflowBatch {
	batch := domain.NewWorkflowBatch("2025-03-14T09:26:53.589Z")
	batch.Invoices = []domain.WorkflowReport{
		{
			InvoiceID:      "INV-001",
			InvoiceDBID:    int64p(1),
			Status:         "processed",
			Violations:     []domain.Violation{{ViolationType: "price_mismatch"}},
			RiskPercentage: domain.RiskOf(45.67),
		},
		{
			InvoiceID:      "INV-002",
			InvoiceDBID:    int64p(2),
			Status:         "processed",
			Violations:     []domain.Violation{},
			RiskPercentage: domain.RiskOf(0),
		},
	}
	return &batch
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Invoices == nil {
		ports.Invoices = &mockInvoiceService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleListInvoices(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page with risk", func(t *testing.T) {
		invoices := &mockInvoiceService{view: &driving.InvoicePageView{
			Invoices: sampleInvoices(), Page: 2, Total: 12, TotalPages: 2,
		}}
		server := newTestServer(t, &Ports{Invoices: invoices})

		_, output, err := server.handleListInvoices(ctx, nil, ListInput{Page: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, invoices.lastPage)
		assert.Equal(t, 2, output.Page)
		assert.Equal(t, 12, output.Total)
		require.Len(t, output.Invoices, 2)
		assert.Equal(t, "INV-001", output.Invoices[0].InvoiceID)
		require.NotNil(t, output.Invoices[0].RiskPercentage)
		assert.Equal(t, 45.67, *output.Invoices[0].RiskPercentage)
		assert.Equal(t, "Medium", output.Invoices[0].RiskLevel)
		assert.Nil(t, output.Invoices[1].RiskPercentage)
		assert.Empty(t, output.Invoices[1].RiskLevel)
	})

	t.Run("filters by search", func(t *testing.T) {
		invoices := &mockInvoiceService{view: &driving.InvoicePageView{Invoices: sampleInvoices(), Page: 1, TotalPages: 1}}
		server := newTestServer(t, &Ports{Invoices: invoices})

		_, output, err := server.handleListInvoices(ctx, nil, ListInput{Search: "globex"})

		require.NoError(t, err)
		require.Len(t, output.Invoices, 1)
		assert.Equal(t, int64(2), output.Invoices[0].ID)
	})

	t.Run("maps backend errors", func(t *testing.T) {
		invoices := &mockInvoiceService{err: fmt.Errorf("send request: %w", domain.ErrBackendUnavailable)}
		server := newTestServer(t, &Ports{Invoices: invoices})

		_, _, err := server.handleListInvoices(ctx, nil, ListInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
		assert.Contains(t, err.Error(), "backend_unavailable")
	})
}

func TestServer_handleGetInvoice(t *testing.T) {
	ctx := context.Background()
	invoice := sampleInvoices()[0]

	server := newTestServer(t, &Ports{Invoices: &mockInvoiceService{invoice: &invoice}})
	_, output, err := server.handleGetInvoice(ctx, nil, IDInput{ID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", output.SellerName)
	assert.Equal(t, 100.0, *output.SubtotalAmount)

	server = newTestServer(t, &Ports{Invoices: &mockInvoiceService{err: domain.ErrNotFound}})
	_, _, err = server.handleGetInvoice(ctx, nil, IDInput{ID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleQueryInvoice(t *testing.T) {
	ctx := context.Background()
	invoices := &mockInvoiceService{answer: "The total is $110.00"}
	server := newTestServer(t, &Ports{Invoices: invoices})

	_, output, err := server.handleQueryInvoice(ctx, nil, QueryInput{ID: 1, Question: "What is the total?"})

	require.NoError(t, err)
	assert.Equal(t, "The total is $110.00", output.Answer)
	assert.Equal(t, "What is the total?", invoices.lastQuestion)
}

func TestServer_ContractTools(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleListContracts(ctx, nil, ListInput{})
		assert.ErrorIs(t, err, domain.ErrNotImplemented)
		_, _, err = server.handleGetContract(ctx, nil, IDInput{ID: 1})
		assert.ErrorIs(t, err, domain.ErrNotImplemented)
		_, _, err = server.handleQueryContract(ctx, nil, QueryInput{ID: 1, Question: "q"})
		assert.ErrorIs(t, err, domain.ErrNotImplemented)
	})

	t.Run("list get and query", func(t *testing.T) {
		contract := domain.Contract{ID: 5, ContractID: "C-2024-01", Summary: "Supply of widgets"}
		contracts := &mockContractService{
			view:     &driving.ContractPageView{Contracts: []domain.Contract{contract}, Page: 1, Total: 1, TotalPages: 1},
			contract: &contract,
			answer:   "Net 30",
		}
		server := newTestServer(t, &Ports{Contracts: contracts})

		_, list, err := server.handleListContracts(ctx, nil, ListInput{Search: "WIDGET"})
		require.NoError(t, err)
		require.Len(t, list.Contracts, 1)
		assert.Equal(t, "C-2024-01", list.Contracts[0].ContractID)

		_, got, err := server.handleGetContract(ctx, nil, IDInput{ID: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.ID)

		_, answer, err := server.handleQueryContract(ctx, nil, QueryInput{ID: 5, Question: "Payment terms?"})
		require.NoError(t, err)
		assert.Equal(t, "Net 30", answer.Answer)
	})
}

func TestServer_handleRunWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("uses explicit ids", func(t *testing.T) {
		workflow := &mockWorkflowService{batch: sampleBatch()}
		server := newTestServer(t, &Ports{Workflow: workflow})

		_, output, err := server.handleRunWorkflow(ctx, nil, RunWorkflowInput{InvoiceIDs: []int64{1, 2}})

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, workflow.gotIDs)
		assert.Equal(t, "Workflow completed for 2 invoices.", output.Message)
		require.Len(t, output.Reports, 2)
		assert.Equal(t, 1, output.Reports[0].Violations)
		assert.Equal(t, "Medium", output.Reports[0].RiskLevel)
		assert.Equal(t, "Good", output.Reports[1].RiskLevel)
	})

	t.Run("defaults to selection", func(t *testing.T) {
		workflow := &mockWorkflowService{batch: sampleBatch()}
		invoices := &mockInvoiceService{selection: []int64{7, 9}}
		server := newTestServer(t, &Ports{Invoices: invoices, Workflow: workflow})

		_, _, err := server.handleRunWorkflow(ctx, nil, RunWorkflowInput{})

		require.NoError(t, err)
		assert.Equal(t, []int64{7, 9}, workflow.gotIDs)
	})

	t.Run("empty selection is invalid input", func(t *testing.T) {
		server := newTestServer(t, &Ports{Workflow: &mockWorkflowService{}})

		_, _, err := server.handleRunWorkflow(ctx, nil, RunWorkflowInput{})

		assert.ErrorIs(t, err, domain.ErrEmptySelection)
		assert.Contains(t, err.Error(), "invalid_input")
	})

	t.Run("backend failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Workflow: &mockWorkflowService{err: errors.New("Internal Server Error")}})

		_, _, err := server.handleRunWorkflow(ctx, nil, RunWorkflowInput{InvoiceIDs: []int64{1}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Internal Server Error")
	})
}

func TestServer_handleReportSummary(t *testing.T) {
	ctx := context.Background()
	batch := sampleBatch()
	summary := &domain.ReportSummary{
		GeneratedAt:     batch.GeneratedAt,
		TotalInvoices:   2,
		TotalViolations: 1,
		RiskBreakdown:   map[domain.RiskLevel]int{domain.RiskLevelGood: 1, domain.RiskLevelMedium: 1},
		TopViolations:   []domain.ViolationCount{{Type: "price_mismatch", Count: 1}},
	}
	reports := &mockReportService{
		batch:   batch,
		summary: summary,
		groups:  []domain.InvoiceGroup{{InvoiceID: "INV-001", Reports: batch.Invoices[:1]}},
	}

	t.Run("whole batch", func(t *testing.T) {
		server := newTestServer(t, &Ports{Reports: reports})

		_, output, err := server.handleReportSummary(ctx, nil, ReportSummaryInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.TotalInvoices)
		assert.Equal(t, 1, output.RiskBreakdown["Medium"])
		assert.Len(t, output.Reports, 2)
	})

	t.Run("one invoice", func(t *testing.T) {
		server := newTestServer(t, &Ports{Reports: reports})

		_, output, err := server.handleReportSummary(ctx, nil, ReportSummaryInput{InvoiceID: "INV-001"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.TotalInvoices)
		assert.Equal(t, 1, output.TotalViolations)
		require.Len(t, output.Reports, 1)
		assert.Equal(t, "INV-001", output.Reports[0].InvoiceID)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		server := newTestServer(t, &Ports{Reports: reports})

		_, _, err := server.handleReportSummary(ctx, nil, ReportSummaryInput{InvoiceID: "INV-404"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no report", func(t *testing.T) {
		server := newTestServer(t, &Ports{Reports: &mockReportService{err: domain.ErrNoReport}})

		_, _, err := server.handleReportSummary(ctx, nil, ReportSummaryInput{})

		assert.ErrorIs(t, err, domain.ErrNoReport)
		assert.Contains(t, err.Error(), "not_found")
	})
}

func TestServer_handleHealth(t *testing.T) {
	ctx := context.Background()

	server := newTestServer(t, &Ports{Dashboard: &mockDashboardService{health: domain.HealthDegraded}})
	_, output, err := server.handleHealth(ctx, nil, HealthInput{})

	require.NoError(t, err)
	assert.Equal(t, "degraded", output.State)
	assert.Equal(t, "Degraded", output.Label)

	server = newTestServer(t, &Ports{})
	_, _, err = server.handleHealth(ctx, nil, HealthInput{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
