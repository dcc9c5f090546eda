package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// Ensure InvoiceService implements the interface.
var _ driving.InvoiceService = (*InvoiceService)(nil)

// InvoiceService backs the invoices page. The last page and the
// selection are mirrored to the store under domain.StorageKeyInvoices.
type InvoiceService struct {
	mu     sync.Mutex
	api    driven.DocuFlowAPI
	store  driven.KVStore
	opener driven.URLOpener
	state  domain.InvoicesState
	cached bool
}

// NewInvoiceService creates the service and restores the cached page.
func NewInvoiceService(ctx context.Context, api driven.DocuFlowAPI, store driven.KVStore, opener driven.URLOpener) *InvoiceService {
	s := &InvoiceService{api: api, store: store, opener: opener}
	if state, ok := loadState[domain.InvoicesState](ctx, store, domain.StorageKeyInvoices); ok {
		s.state = state
		s.cached = state.Page > 0
	}
	return s
}

func (s *InvoiceService) persist(ctx context.Context) {
	SaveState(ctx, s.store, domain.StorageKeyInvoices, s.state)
}

func (s *InvoiceService) view() *driving.InvoicePageView {
	return &driving.InvoicePageView{
		Invoices:   slices.Clone(s.state.Invoices),
		Page:       s.state.Page,
		Total:      s.state.Total,
		TotalPages: domain.TotalPages(s.state.Total, domain.PageSize),
	}
}

// List fetches a one-based page. The selection survives page changes.
func (s *InvoiceService) List(ctx context.Context, page int) (*driving.InvoicePageView, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if page < 1 {
		page = 1
	}
	result, err := s.api.ListInvoices(ctx, domain.ListParams{
		Limit:  domain.PageSize,
		Offset: domain.PageOffset(page, domain.PageSize),
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Invoices = result.Invoices
	s.state.Page = page
	s.state.Total = result.Total
	s.cached = true
	s.persist(ctx)
	return s.view(), nil
}

// Cached returns the last fetched page.
func (s *InvoiceService) Cached() (*driving.InvoicePageView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cached {
		return nil, false
	}
	return s.view(), true
}

// Get fetches one invoice.
func (s *InvoiceService) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.api.GetInvoice(ctx, id)
}

// Query asks the AI service about one invoice.
func (s *InvoiceService) Query(ctx context.Context, id int64, question string) (string, error) {
	if s.api == nil {
		return "", domain.ErrNotImplemented
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrEmptyQuery
	}
	payload, err := s.api.QueryInvoice(ctx, id, question)
	if err != nil {
		return "", err
	}
	return ExtractInlineAnswer(payload), nil
}

// DownloadURL resolves the presigned PDF link.
func (s *InvoiceService) DownloadURL(ctx context.Context, id int64) (string, error) {
	if s.api == nil {
		return "", domain.ErrNotImplemented
	}
	return resolveDownloadURL(ctx, s.api, domain.DocumentTypeInvoice, id)
}

// Open resolves the PDF link and opens it. The URL is returned even when
// no opener is configured so callers can print it.
func (s *InvoiceService) Open(ctx context.Context, id int64) (string, error) {
	url, err := s.DownloadURL(ctx, id)
	if err != nil {
		return "", err
	}
	return url, openURL(s.opener, url)
}

// Selection returns selected IDs in selection order.
func (s *InvoiceService) Selection() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.SelectedIDs)
}

// Select adds IDs, ignoring ones already selected.
func (s *InvoiceService) Select(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if !slices.Contains(s.state.SelectedIDs, id) {
			s.state.SelectedIDs = append(s.state.SelectedIDs, id)
		}
	}
	s.persist(context.Background())
}

// Unselect removes IDs.
func (s *InvoiceService) Unselect(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedIDs = slices.DeleteFunc(s.state.SelectedIDs, func(id int64) bool {
		return slices.Contains(ids, id)
	})
	s.persist(context.Background())
}

// ToggleSelect flips one ID.
func (s *InvoiceService) ToggleSelect(id int64) bool {
	if slices.Contains(s.Selection(), id) {
		s.Unselect(id)
		return false
	}
	s.Select(id)
	return true
}

// ClearSelection empties the selection.
func (s *InvoiceService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedIDs = nil
	s.persist(context.Background())
}

// applyWorkflow merges batch risk onto the cached page.
func (s *InvoiceService) applyWorkflow(ctx context.Context, batch domain.WorkflowBatch, submittedIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Invoices) == 0 {
		return
	}
	s.state.Invoices = MergeRiskPercentages(s.state.Invoices, batch, submittedIDs)
	s.persist(ctx)
}

func resolveDownloadURL(ctx context.Context, api driven.DocuFlowAPI, docType domain.DocumentType, id int64) (string, error) {
	resp, err := api.DownloadURL(ctx, docType, id)
	if err != nil {
		return "", err
	}
	if resp == nil || !resp.Success || resp.URL == "" {
		return "", fmt.Errorf("no download link available for %s %d: %w", docType, id, domain.ErrNotFound)
	}
	return resp.URL, nil
}

func openURL(opener driven.URLOpener, url string) error {
	if opener == nil {
		return domain.ErrNotImplemented
	}
	logger.Debug("opening %s", url)
	if err := opener.Open(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
