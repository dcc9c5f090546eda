package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkflowBatch_NeverNil(t *testing.T) {
	batch := NewWorkflowBatch("2025-01-01T00:00:00.000Z")

	assert.NotNil(t, batch.Invoices)
	assert.Empty(t, batch.Invoices)
	assert.NotNil(t, batch.Metadata)

	data, err := json.Marshal(batch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"generated_at":"2025-01-01T00:00:00.000Z","invoices":[],"metadata":{}}`, string(data))
}

func TestClauseReference_String(t *testing.T) {
	var ref ClauseReference
	require.NoError(t, json.Unmarshal([]byte(`"Section 4.2"`), &ref))
	assert.Equal(t, "Section 4.2", ref.String())
	assert.Nil(t, ref.Fields)

	require.NoError(t, json.Unmarshal([]byte(`{"clause_id":"C-1","contract_id":"K-9"}`), &ref))
	assert.Equal(t, "", ref.Text)
	assert.Equal(t, "clause_id=C-1 contract_id=K-9", ref.String())
}

func TestClauseReference_Null(t *testing.T) {
	ref := ClauseReference{Text: "stale"}
	require.NoError(t, json.Unmarshal([]byte(`null`), &ref))
	assert.True(t, ref.IsZero())
}

func TestViolation_OmitsEmptyClauseReference(t *testing.T) {
	data, err := json.Marshal(Violation{ViolationType: "PRICE_MISMATCH"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"violation_type":"PRICE_MISMATCH"}`, string(data))
}

func TestViolation_KeepsStructuredClauseReference(t *testing.T) {
	v := Violation{
		ViolationType:   "PRICE_MISMATCH",
		ClauseReference: ClauseReference{Fields: map[string]any{"clause_id": "C-1"}},
	}

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var back Violation
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}

func TestContractClause_SimilarityOrZero(t *testing.T) {
	sim := 0.82
	assert.Equal(t, 0.82, ContractClause{Similarity: &sim}.SimilarityOrZero())
	assert.Equal(t, 0.0, ContractClause{}.SimilarityOrZero())
}
