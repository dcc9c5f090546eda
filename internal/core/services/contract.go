package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// Ensure ContractService implements the interface.
var _ driving.ContractService = (*ContractService)(nil)

// ContractService backs the contracts page.
type ContractService struct {
	mu     sync.Mutex
	api    driven.DocuFlowAPI
	store  driven.KVStore
	opener driven.URLOpener
	state  domain.ContractsState
	cached bool
}

// NewContractService creates the service and restores the cached page.
func NewContractService(ctx context.Context, api driven.DocuFlowAPI, store driven.KVStore, opener driven.URLOpener) *ContractService {
	s := &ContractService{api: api, store: store, opener: opener}
	if state, ok := loadState[domain.ContractsState](ctx, store, domain.StorageKeyContracts); ok {
		s.state = state
		s.cached = state.Page > 0
	}
	return s
}

func (s *ContractService) view() *driving.ContractPageView {
	return &driving.ContractPageView{
		Contracts:  slices.Clone(s.state.Contracts),
		Page:       s.state.Page,
		Total:      s.state.Total,
		TotalPages: domain.TotalPages(s.state.Total, domain.PageSize),
	}
}

// List fetches a one-based page.
func (s *ContractService) List(ctx context.Context, page int) (*driving.ContractPageView, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if page < 1 {
		page = 1
	}
	result, err := s.api.ListContracts(ctx, domain.ListParams{
		Limit:  domain.PageSize,
		Offset: domain.PageOffset(page, domain.PageSize),
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.ContractsState{Contracts: result.Contracts, Page: page, Total: result.Total}
	s.cached = true
	SaveState(ctx, s.store, domain.StorageKeyContracts, s.state)
	return s.view(), nil
}

// Cached returns the last fetched page.
func (s *ContractService) Cached() (*driving.ContractPageView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cached {
		return nil, false
	}
	return s.view(), true
}

// Get fetches one contract by database ID.
func (s *ContractService) Get(ctx context.Context, id int64) (*domain.Contract, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.api.GetContract(ctx, id)
}

// Query asks the AI service about one contract.
func (s *ContractService) Query(ctx context.Context, id int64, question string) (string, error) {
	if s.api == nil {
		return "", domain.ErrNotImplemented
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrEmptyQuery
	}
	payload, err := s.api.QueryContract(ctx, id, question)
	if err != nil {
		return "", err
	}
	return ExtractInlineAnswer(payload), nil
}

// DownloadURL resolves the presigned PDF link.
func (s *ContractService) DownloadURL(ctx context.Context, id int64) (string, error) {
	if s.api == nil {
		return "", domain.ErrNotImplemented
	}
	return resolveDownloadURL(ctx, s.api, domain.DocumentTypeContract, id)
}

// Open resolves the PDF link and opens it.
func (s *ContractService) Open(ctx context.Context, id int64) (string, error) {
	url, err := s.DownloadURL(ctx, id)
	if err != nil {
		return "", err
	}
	return url, openURL(s.opener, url)
}
