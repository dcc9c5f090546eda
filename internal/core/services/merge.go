package services

import "github.com/custodia-labs/docuflow-cli/internal/core/domain"

// MergeRiskPercentages copies the risk computed by a workflow run onto a
// previously fetched invoice list. It returns a new slice; invoices is
// not modified.
//
// Reports are matched by invoice_db_id first, then by invoice_id. A report
// without invoice_db_id is matched to submittedIDs by position. That fallback
// assumes the backend answered in request order, which it does not promise,
// so a reordered response without invoice_db_id can attribute risk to the
// wrong invoice.
//
// An explicit null risk counts as a hit and overwrites; an unknown risk
// is not a hit and leaves the invoice untouched.
func MergeRiskPercentages(invoices []domain.Invoice, batch domain.WorkflowBatch, submittedIDs []int64) []domain.Invoice {
	byDBID := make(map[int64]domain.RiskPercentage)
	byInvoiceID := make(map[string]domain.RiskPercentage)

	for i, report := range batch.Invoices {
		if report.RiskPercentage.IsUnknown() {
			continue
		}
		switch {
		case report.InvoiceDBID != nil:
			byDBID[*report.InvoiceDBID] = report.RiskPercentage
		case i < len(submittedIDs):
			byDBID[submittedIDs[i]] = report.RiskPercentage
		}
		if report.InvoiceID != "" {
			byInvoiceID[report.InvoiceID] = report.RiskPercentage
		}
	}

	merged := make([]domain.Invoice, len(invoices))
	for i, inv := range invoices {
		merged[i] = inv
		if risk, ok := byDBID[inv.ID]; ok {
			merged[i].RiskPercentage = risk
			continue
		}
		if inv.InvoiceID == "" {
			continue
		}
		if risk, ok := byInvoiceID[inv.InvoiceID]; ok {
			merged[i].RiskPercentage = risk
		}
	}
	return merged
}
