package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService reads the batch held by a WorkflowStateService.
type ReportService struct {
	state    *WorkflowStateService
	exporter driven.ReportExporter
}

// NewReportService creates a new report service.
func NewReportService(state *WorkflowStateService, exporter driven.ReportExporter) *ReportService {
	return &ReportService{state: state, exporter: exporter}
}

func (s *ReportService) batch() (domain.WorkflowBatch, bool) {
	if s.state == nil {
		return domain.WorkflowBatch{}, false
	}
	return s.state.Batch()
}

// Current returns the stored batch and its summary.
// An empty batch counts as no report.
func (s *ReportService) Current() (*domain.WorkflowBatch, *domain.ReportSummary, error) {
	batch, ok := s.batch()
	if !ok || len(batch.Invoices) == 0 {
		return nil, nil, domain.ErrNoReport
	}
	summary := Summarize(batch)
	return &batch, &summary, nil
}

// Groups returns every invoice_id group.
func (s *ReportService) Groups() ([]domain.InvoiceGroup, error) {
	batch, _, err := s.Current()
	if err != nil {
		return nil, err
	}
	return GroupByInvoice(*batch), nil
}

// Invoice returns every run of one invoice_id.
func (s *ReportService) Invoice(invoiceID string) (*domain.InvoiceGroup, error) {
	groups, err := s.Groups()
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if groups[i].InvoiceID == invoiceID {
			return &groups[i], nil
		}
	}
	return nil, fmt.Errorf("invoice %q in report: %w", invoiceID, domain.ErrNotFound)
}

// MistakesStatus reports violations for invoice in the stored batch.
func (s *ReportService) MistakesStatus(invoice domain.Invoice) domain.MistakesStatus {
	batch, ok := s.batch()
	if !ok {
		return domain.MistakesNotChecked
	}
	return MistakesStatusOf(invoice, &batch)
}

// Export writes the stored batch with its summary.
func (s *ReportService) Export(ctx context.Context, path string) error {
	if s.exporter == nil {
		return domain.ErrNotImplemented
	}
	batch, summary, err := s.Current()
	if err != nil {
		return err
	}
	return s.exporter.Export(ctx, path, *batch, *summary)
}

// Clear removes the stored batch.
func (s *ReportService) Clear() {
	if s.state != nil {
		s.state.Clear(context.Background())
	}
}
