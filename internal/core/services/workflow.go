package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// Ensure WorkflowService implements the interface.
var _ driving.WorkflowService = (*WorkflowService)(nil)

// WorkflowService runs the compliance workflow over selected invoices.
type WorkflowService struct {
	api        driven.DocuFlowAPI
	normalizer *Normalizer
	state      *WorkflowStateService
	invoices   *InvoiceService
}

// NewWorkflowService creates a new workflow service.
// invoices may be nil, in which case no page is enriched.
func NewWorkflowService(
	api driven.DocuFlowAPI,
	normalizer *Normalizer,
	state *WorkflowStateService,
	invoices *InvoiceService,
) *WorkflowService {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	return &WorkflowService{
		api:        api,
		normalizer: normalizer,
		state:      state,
		invoices:   invoices,
	}
}

// Run analyses invoiceIDs. On failure nothing stored is changed.
func (s *WorkflowService) Run(ctx context.Context, invoiceIDs []int64) (*domain.WorkflowBatch, error) {
	if len(invoiceIDs) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Workflow")
	logger.Debug("analysing %d invoice(s): %v", len(invoiceIDs), invoiceIDs)

	payload, err := s.api.AnalyzeInvoices(ctx, invoiceIDs)
	if err != nil {
		return nil, err
	}

	batch := s.normalizer.NormalizeBatch(payload)
	logger.Debug("normalised %d report(s), generated at %s", len(batch.Invoices), batch.GeneratedAt)

	if s.state != nil {
		s.state.SetBatch(ctx, batch)
	}
	if s.invoices != nil {
		s.invoices.applyWorkflow(ctx, batch, invoiceIDs)
		s.invoices.ClearSelection()
	}
	return &batch, nil
}

// WorkflowCompletedMessage is the success notification for a run.
func WorkflowCompletedMessage(batch *domain.WorkflowBatch) string {
	n := 0
	if batch != nil {
		n = len(batch.Invoices)
	}
	noun := "invoices"
	if n == 1 {
		noun = "invoice"
	}
	return fmt.Sprintf("Workflow completed for %d %s.", n, noun)
}
