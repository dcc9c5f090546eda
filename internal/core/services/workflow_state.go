package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
)

// WorkflowStateService owns the current workflow batch.
// It hydrates from the store on construction and writes through on
// every mutation. It is safe for concurrent use.
type WorkflowStateService struct {
	mu    sync.RWMutex
	store driven.KVStore
	batch *domain.WorkflowBatch
}

// NewWorkflowStateService creates the service and hydrates it from store.
// A stored value without an invoices array is discarded.
func NewWorkflowStateService(ctx context.Context, store driven.KVStore) *WorkflowStateService {
	s := &WorkflowStateService{store: store}
	s.batch = hydrateBatch(ctx, store)
	return s
}

func hydrateBatch(ctx context.Context, store driven.KVStore) *domain.WorkflowBatch {
	raw, ok := loadState[json.RawMessage](ctx, store, domain.StorageKeyWorkflowBatch)
	if !ok {
		return nil
	}
	var shape struct {
		Invoices []json.RawMessage `json:"invoices"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil || shape.Invoices == nil {
		storageLog.Warn("discarding stored batch without invoices")
		return nil
	}
	var batch domain.WorkflowBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		storageLog.Warn("discarding unreadable stored batch: %v", err)
		return nil
	}
	if batch.Metadata == nil {
		batch.Metadata = map[string]any{}
	}
	return &batch
}

// Batch returns a copy of the current batch.
func (s *WorkflowStateService) Batch() (domain.WorkflowBatch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.batch == nil {
		return domain.WorkflowBatch{}, false
	}
	return *s.batch, true
}

// SetBatch replaces the current batch and persists it.
func (s *WorkflowStateService) SetBatch(ctx context.Context, batch domain.WorkflowBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = &batch
	SaveState(ctx, s.store, domain.StorageKeyWorkflowBatch, batch)
}

// Clear removes the current batch from memory and storage.
func (s *WorkflowStateService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = nil
	ClearState(ctx, s.store, domain.StorageKeyWorkflowBatch)
}
