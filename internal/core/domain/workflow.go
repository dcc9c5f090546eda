package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DefaultReportStatus is the status of a report that does not carry one.
const DefaultReportStatus = "processed"

// UnknownInvoiceID labels a report without any usable invoice identifier.
const UnknownInvoiceID = "Unknown Invoice"

// WorkflowBatch is the canonical envelope of one workflow run.
// Every backend response shape is normalised into it.
type WorkflowBatch struct {
	// GeneratedAt is an RFC 3339 timestamp.
	GeneratedAt string `json:"generated_at"`

	// Invoices is never nil, even for an empty or failed run.
	Invoices []WorkflowReport `json:"invoices"`

	// Batch-level counters, present only when the backend sent them.
	Processed          *int         `json:"processed,omitempty"`
	Failed             *int         `json:"failed,omitempty"`
	Errors             []BatchError `json:"errors,omitempty"`
	InvoicesInQueue    *int         `json:"invoices_in_queue,omitempty"`
	ViolationsDetected *int         `json:"violations_detected,omitempty"`

	NextRunScheduledInHours *float64 `json:"next_run_scheduled_in_hours,omitempty"`

	// Metadata is never nil.
	Metadata map[string]any `json:"metadata"`
}

// NewWorkflowBatch returns an empty batch stamped with generatedAt.
func NewWorkflowBatch(generatedAt string) WorkflowBatch {
	return WorkflowBatch{
		GeneratedAt: generatedAt,
		Invoices:    []WorkflowReport{},
		Metadata:    map[string]any{},
	}
}

// BatchError is a per-invoice failure reported by a bulk workflow run.
type BatchError struct {
	InvoiceDBID *int64 `json:"invoice_db_id,omitempty"`
	InvoiceID   string `json:"invoice_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// WorkflowReport is one workflow outcome for one invoice-processing attempt.
// InvoiceID may repeat across runs; InvoiceDBID disambiguates when present.
type WorkflowReport struct {
	InvoiceID   string `json:"invoice_id"`
	InvoiceDBID *int64 `json:"invoice_db_id,omitempty"`
	Status      string `json:"status"`
	ProcessedAt string `json:"processed_at,omitempty"`

	Violations        []Violation        `json:"violations"`
	EvaluationSummary *EvaluationSummary `json:"evaluation_summary,omitempty"`
	ContractClauses   []ContractClause   `json:"contract_clauses"`

	NextRunScheduledInHours *float64 `json:"next_run_scheduled_in_hours,omitempty"`

	// RiskAssessmentScore is the raw 0-1 backend score.
	RiskAssessmentScore *float64 `json:"risk_assessment_score,omitempty"`

	// RiskPercentage is derived from the score or the evaluation summary.
	RiskPercentage RiskPercentage `json:"risk_percentage,omitzero"`

	// Raw is the source object, kept verbatim for audit and export.
	Raw map[string]any `json:"raw,omitempty"`
}

// EvaluationSummary holds the rule coverage of one report.
type EvaluationSummary struct {
	LineItemsEvaluated int  `json:"line_items_evaluated"`
	RulesEvaluated     int  `json:"rules_evaluated"`
	ViolationsDetected *int `json:"violations_detected,omitempty"`
}

// Violation is one detected rule breach on one invoice line.
type Violation struct {
	ViolationType string `json:"violation_type"`
	LineID        string `json:"line_id,omitempty"`

	ExpectedPrice *float64 `json:"expected_price,omitempty"`
	ActualPrice   *float64 `json:"actual_price,omitempty"`
	Difference    *float64 `json:"difference,omitempty"`

	ClauseReference ClauseReference `json:"clause_reference,omitzero"`

	// Reasoning and AppliedRule are free-form backend objects.
	Reasoning   any `json:"reasoning,omitempty"`
	AppliedRule any `json:"applied_rule,omitempty"`
}

// ContractClause is a similarity-scored link between an invoice and a contract clause.
type ContractClause struct {
	ContractID string   `json:"contract_id,omitempty"`
	ClauseID   string   `json:"clause_id,omitempty"`
	Text       string   `json:"text,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// SimilarityOrZero returns the similarity, treating a missing one as 0.
func (c ContractClause) SimilarityOrZero() float64 {
	if c.Similarity == nil {
		return 0
	}
	return *c.Similarity
}

// ClauseReference points a violation at a contract clause.
// The backend sends either a plain string or a structured object.
type ClauseReference struct {
	Text   string
	Fields map[string]any
}

// IsZero reports whether the reference is empty.
func (c ClauseReference) IsZero() bool {
	return c.Text == "" && c.Fields == nil
}

// String returns a single-line rendering of the reference.
func (c ClauseReference) String() string {
	if c.Fields == nil {
		return c.Text
	}
	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c.Fields[k]))
	}
	return strings.Join(parts, " ")
}

// MarshalJSON implements json.Marshaler.
func (c ClauseReference) MarshalJSON() ([]byte, error) {
	if c.Fields != nil {
		return json.Marshal(c.Fields)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ClauseReference) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*c = ClauseReference{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ClauseReference{Text: s}
		return nil
	case data[0] == '{':
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*c = ClauseReference{Fields: m}
		return nil
	default:
		*c = ClauseReference{Text: string(data)}
		return nil
	}
}
