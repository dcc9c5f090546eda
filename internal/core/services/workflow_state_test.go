package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

func sampleBatch() domain.WorkflowBatch {
	payload := decodeJSON(`{
		"processed": 2,
		"errors": [{"invoice_db_id": 11, "invoice_id": "INV-11", "error": "timeout"}],
		"reports": [
			{
				"invoice_id": "INV-7",
				"invoice_db_id": 7,
				"risk_assessment_score": 0.2,
				"processed_at": "2025-03-01T10:00:00Z",
				"evaluation_summary": {"line_items_evaluated": 4, "rules_evaluated": 2, "violations_detected": 1},
				"violations": [{"violation_type": "PRICE_MISMATCH", "expected_price": 10, "actual_price": 12, "clause_reference": {"clause_id": "4.2"}}],
				"contract_clauses": [{"contract_id": "K-1", "clause_id": "4.2", "similarity": 0.8}]
			},
			{"invoice_id": "INV-9", "invoice_db_id": 9, "risk_assessment_score": null, "next_run_scheduled_in_hours": 6}
		]
	}`)
	return newTestNormalizer().NormalizeBatch(payload)
}

func TestWorkflowState_EmptyStore(t *testing.T) {
	state := NewWorkflowStateService(context.Background(), memory.NewKVStore())

	_, ok := state.Batch()
	assert.False(t, ok)
}

func TestWorkflowState_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	batch := sampleBatch()

	NewWorkflowStateService(ctx, store).SetBatch(ctx, batch)
	reloaded, ok := NewWorkflowStateService(ctx, store).Batch()

	require.True(t, ok)
	assert.Equal(t, batch, reloaded)
	assert.Equal(t, Summarize(batch), Summarize(reloaded))
}

func TestWorkflowState_DiscardsValueWithoutInvoices(t *testing.T) {
	ctx := context.Background()
	for _, stored := range []string{`{"generated_at":"x"}`, `{"invoices":null}`, `[]`, `garbage`} {
		store := memory.NewKVStore()
		require.NoError(t, store.Set(ctx, domain.StorageKeyWorkflowBatch, []byte(stored)))

		_, ok := NewWorkflowStateService(ctx, store).Batch()
		assert.False(t, ok, stored)
	}
}

func TestWorkflowState_FillsMissingMetadata(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Set(ctx, domain.StorageKeyWorkflowBatch, []byte(`{"generated_at":"x","invoices":[]}`)))

	batch, ok := NewWorkflowStateService(ctx, store).Batch()

	require.True(t, ok)
	assert.NotNil(t, batch.Metadata)
	assert.Empty(t, batch.Invoices)
}

func TestWorkflowState_Clear(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	state := NewWorkflowStateService(ctx, store)
	state.SetBatch(ctx, sampleBatch())

	state.Clear(ctx)

	_, ok := state.Batch()
	assert.False(t, ok)
	_, err := store.Get(ctx, domain.StorageKeyWorkflowBatch)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkflowState_StoreFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	state := NewWorkflowStateService(ctx, failingStore{})

	state.SetBatch(ctx, sampleBatch())

	batch, ok := state.Batch()
	require.True(t, ok)
	assert.Len(t, batch.Invoices, 2)
}
