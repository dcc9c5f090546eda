package domain

// UnknownViolationType buckets violations that carry no type.
const UnknownViolationType = "Unknown violation"

// Display limits for the reports view.
const (
	TopViolationsLimit = 4
	TopClausesLimit    = 6
)

// ReportSummary is display-ready statistics derived from a WorkflowBatch.
// Deriving it never mutates the batch.
type ReportSummary struct {
	GeneratedAt string

	TotalInvoices   int
	TotalViolations int

	// ViolationBreakdown counts violations per type.
	ViolationBreakdown map[string]int

	// TopViolations is the breakdown ordered by count, truncated to TopViolationsLimit.
	TopViolations []ViolationCount

	// LineItemsEvaluated and RulesEvaluated sum the reports that carry a summary.
	LineItemsEvaluated int
	RulesEvaluated     int

	// AverageNextRunHours is the mean over reports that provide a value.
	// It is nil when no report does.
	AverageNextRunHours *float64

	// RiskBreakdown counts reports per risk level.
	RiskBreakdown map[RiskLevel]int

	// TopClauses is every clause of every report ordered by similarity,
	// truncated to TopClausesLimit.
	TopClauses []RankedClause

	// Violations is every violation of every report in batch order.
	Violations []FlattenedViolation
}

// ViolationCount is one row of the violation breakdown.
type ViolationCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// FlattenedViolation is a violation tagged with the report it came from.
type FlattenedViolation struct {
	Violation
	InvoiceID   string `json:"invoice_id"`
	ProcessedAt string `json:"processed_at,omitempty"`
}

// RankedClause is a clause tagged with the report it came from.
type RankedClause struct {
	ContractClause
	InvoiceID string `json:"invoice_id"`
}

// InvoiceGroup is every report of one invoice_id in batch order.
// Re-runs are kept as distinct entries.
type InvoiceGroup struct {
	InvoiceID string
	Reports   []WorkflowReport
}

// MistakesStatus says whether an invoice had violations in the latest batch.
type MistakesStatus string

// Mistakes statuses.
const (
	MistakesFound      MistakesStatus = "has-violations"
	MistakesNone       MistakesStatus = "no-violations"
	MistakesNotChecked MistakesStatus = "not-checked"
)

// Label returns a short human-readable label.
func (s MistakesStatus) Label() string {
	switch s {
	case MistakesFound:
		return "Mistakes found"
	case MistakesNone:
		return "No mistakes"
	default:
		return "Not checked"
	}
}
