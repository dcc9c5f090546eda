package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

func int64p(v int64) *int64 { return &v }

func TestMergeRiskPercentages_ByDBID(t *testing.T) {
	invoices := []domain.Invoice{{ID: 7, InvoiceID: "INV-7"}, {ID: 8, InvoiceID: "INV-8"}}
	batch := domain.NewWorkflowBatch("now")
	batch.Invoices = []domain.WorkflowReport{
		{InvoiceID: "other", InvoiceDBID: int64p(7), RiskPercentage: domain.RiskOf(20)},
	}

	merged := MergeRiskPercentages(invoices, batch, []int64{7})

	require.Len(t, merged, 2)
	assert.Equal(t, domain.RiskOf(20), merged[0].RiskPercentage)
	assert.True(t, merged[1].RiskPercentage.IsUnknown())
	assert.True(t, invoices[0].RiskPercentage.IsUnknown(), "input must not be modified")
}

func TestMergeRiskPercentages_ByInvoiceID(t *testing.T) {
	invoices := []domain.Invoice{{ID: 1, InvoiceID: "INV-1"}}
	batch := domain.NewWorkflowBatch("now")
	batch.Invoices = []domain.WorkflowReport{
		{InvoiceID: "INV-1", InvoiceDBID: int64p(99), RiskPercentage: domain.RiskOf(55)},
	}

	merged := MergeRiskPercentages(invoices, batch, nil)

	assert.Equal(t, domain.RiskOf(55), merged[0].RiskPercentage)
}

func TestMergeRiskPercentages_PositionalFallback(t *testing.T) {
	invoices := []domain.Invoice{{ID: 3}, {ID: 4}}
	batch := domain.NewWorkflowBatch("now")
	batch.Invoices = []domain.WorkflowReport{
		{InvoiceID: "X", RiskPercentage: domain.RiskOf(10)},
		{InvoiceID: "Y", RiskPercentage: domain.RiskOf(80)},
	}

	merged := MergeRiskPercentages(invoices, batch, []int64{4, 3})

	assert.Equal(t, domain.RiskOf(80), merged[0].RiskPercentage)
	assert.Equal(t, domain.RiskOf(10), merged[1].RiskPercentage)
}

func TestMergeRiskPercentages_NullOverwritesUnknownSkips(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: 1, RiskPercentage: domain.RiskOf(40)},
		{ID: 2, RiskPercentage: domain.RiskOf(60)},
	}
	batch := domain.NewWorkflowBatch("now")
	batch.Invoices = []domain.WorkflowReport{
		{InvoiceDBID: int64p(1), RiskPercentage: domain.RiskNull()},
		{InvoiceDBID: int64p(2), RiskPercentage: domain.RiskUnknown()},
	}

	merged := MergeRiskPercentages(invoices, batch, []int64{1, 2})

	assert.True(t, merged[0].RiskPercentage.IsNull())
	assert.Equal(t, domain.RiskOf(60), merged[1].RiskPercentage)
}

func TestMergeRiskPercentages_AfterWorkflowRun(t *testing.T) {
	invoices := []domain.Invoice{{ID: 7}}
	payload := decodeJSON(`{"reports":[{"invoice_id":"INV-7","invoice_db_id":7,"risk_assessment_score":0.2}]}`)
	batch := newTestNormalizer().NormalizeBatch(payload)

	merged := MergeRiskPercentages(invoices, batch, []int64{7})

	value, ok := merged[0].RiskPercentage.Value()
	require.True(t, ok)
	assert.Equal(t, 20.0, value)
}
