// Package domain holds the DocuFlow entities shared by every layer:
// invoices and contracts owned by the backend, workflow reports and the
// canonical WorkflowBatch they are normalised into, the tri-state
// RiskPercentage, and the derived ReportSummary.
//
// It imports only the standard library.
package domain
