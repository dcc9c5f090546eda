package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// timestampLayout matches the millisecond ISO-8601 form the backend uses.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Normalizer converts the heterogeneous workflow responses of the
// backend into one canonical domain.WorkflowBatch.
//
// It is permissive: unknown or mistyped fields are dropped, never
// reported. It never returns an error and never returns a nil batch.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer. A nil clock uses time.Now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

func (n *Normalizer) timestamp() string {
	return n.now().UTC().Format(timestampLayout)
}

// NormalizeBatch dispatches on the payload shape, in priority order:
//  1. object with a "reports" array (bulk format)
//  2. object with an "invoices" array (legacy batch)
//  3. object with a string "invoice_id" (single report)
//  4. bare array of reports
//  5. anything else yields an empty batch
func (n *Normalizer) NormalizeBatch(payload any) domain.WorkflowBatch {
	if obj, ok := asObject(payload); ok {
		if reports, ok := asArray(obj["reports"]); ok {
			return n.bulkBatch(obj, reports)
		}

		if invoices, ok := asArray(obj["invoices"]); ok {
			batch := domain.NewWorkflowBatch(n.timestamp())
			if at, ok := asString(obj["generated_at"]); ok && at != "" {
				batch.GeneratedAt = at
			}
			batch.Invoices = n.normalizeReports(invoices)
			if meta, ok := asObject(obj["metadata"]); ok {
				batch.Metadata = meta
			}
			return batch
		}

		if _, ok := asString(obj["invoice_id"]); ok {
			report, _ := n.NormalizeReport(obj)
			batch := domain.NewWorkflowBatch(n.timestamp())
			if report.ProcessedAt != "" {
				batch.GeneratedAt = report.ProcessedAt
			}
			batch.Invoices = []domain.WorkflowReport{report}
			return batch
		}

		return domain.NewWorkflowBatch(n.timestamp())
	}

	if items, ok := asArray(payload); ok {
		batch := domain.NewWorkflowBatch(n.timestamp())
		batch.Invoices = n.normalizeReports(items)
		return batch
	}

	return domain.NewWorkflowBatch(n.timestamp())
}

// bulkBatch handles the current response format. It carries no timestamp
// of its own, and counters are copied only when correctly typed.
func (n *Normalizer) bulkBatch(obj map[string]any, reports []any) domain.WorkflowBatch {
	batch := domain.NewWorkflowBatch(n.timestamp())
	batch.Invoices = n.normalizeReports(reports)
	batch.Processed = intPtr(obj["processed"])
	batch.Failed = intPtr(obj["failed"])
	batch.InvoicesInQueue = intPtr(obj["invoices_in_queue"])
	batch.ViolationsDetected = intPtr(obj["violations_detected"])
	batch.NextRunScheduledInHours = numberPtr(obj["next_run_scheduled_in_hours"])

	if errs, ok := asArray(obj["errors"]); ok {
		batch.Errors = make([]domain.BatchError, 0, len(errs))
		for _, item := range errs {
			e, ok := asObject(item)
			if !ok {
				continue
			}
			batch.Errors = append(batch.Errors, domain.BatchError{
				InvoiceDBID: int64Ptr(e["invoice_db_id"]),
				InvoiceID:   scalarString(e["invoice_id"]),
				Error:       scalarString(e["error"]),
			})
		}
	}

	if status, ok := obj["status"]; ok {
		batch.Metadata["status"] = status
	}
	return batch
}

func (n *Normalizer) normalizeReports(items []any) []domain.WorkflowReport {
	reports := make([]domain.WorkflowReport, 0, len(items))
	for _, item := range items {
		if report, ok := n.NormalizeReport(item); ok {
			reports = append(reports, report)
		}
	}
	return reports
}

// NormalizeReport converts one raw object into a report.
// It returns false when raw is not an object.
func (n *Normalizer) NormalizeReport(raw any) (domain.WorkflowReport, bool) {
	src, ok := asObject(raw)
	if !ok {
		return domain.WorkflowReport{}, false
	}

	report := domain.WorkflowReport{
		InvoiceID:       resolveInvoiceID(src),
		Status:          domain.DefaultReportStatus,
		Violations:      normalizeViolations(src["violations"]),
		ContractClauses: normalizeClauses(src["contract_clauses"]),
		Raw:             src,
	}

	if status, ok := asString(src["status"]); ok {
		report.Status = status
	}
	if at, ok := asString(src["processed_at"]); ok {
		report.ProcessedAt = at
	}

	summary, hasSummary := asObject(src["evaluation_summary"])
	if hasSummary {
		report.EvaluationSummary = &domain.EvaluationSummary{
			LineItemsEvaluated: intOrZero(summary["line_items_evaluated"]),
			RulesEvaluated:     intOrZero(summary["rules_evaluated"]),
			ViolationsDetected: intPtr(summary["violations_detected"]),
		}
	}

	report.NextRunScheduledInHours = numberPtr(src["next_run_scheduled_in_hours"])
	report.RiskAssessmentScore = numberPtr(src["risk_assessment_score"])
	report.RiskPercentage = resolveRisk(src, summary, hasSummary, len(report.Violations))

	if id := int64Ptr(src["invoice_db_id"]); id != nil {
		report.InvoiceDBID = id
	} else {
		report.InvoiceDBID = int64Ptr(src["db_id"])
	}

	return report, true
}

// resolveInvoiceID prefers a string invoice_id, then a string id, then a
// stringified invoice_id of any other type.
func resolveInvoiceID(src map[string]any) string {
	if s, ok := asString(src["invoice_id"]); ok {
		return s
	}
	if s, ok := asString(src["id"]); ok {
		return s
	}
	if v, ok := src["invoice_id"]; ok {
		return stringify(v)
	}
	return domain.UnknownInvoiceID
}

// resolveRisk applies the first matching rule:
//  1. numeric risk_assessment_score, scaled to a percentage with 2 decimals
//  2. explicit null risk_assessment_score
//  3. numeric risk_percentage, as-is
//  4. explicit null risk_percentage
//  5. evaluation summary ratio, rounded to an integer
//  6. unknown
func resolveRisk(src, summary map[string]any, hasSummary bool, violationCount int) domain.RiskPercentage {
	if score, ok := asNumber(src["risk_assessment_score"]); ok {
		pct := decimal.NewFromFloat(score).Mul(decimal.NewFromInt(100)).Round(2)
		return domain.RiskOf(pct.InexactFloat64())
	}
	if isNull(src, "risk_assessment_score") {
		return domain.RiskNull()
	}
	if pct, ok := asNumber(src["risk_percentage"]); ok {
		return domain.RiskOf(pct)
	}
	if isNull(src, "risk_percentage") {
		return domain.RiskNull()
	}
	if !hasSummary {
		return domain.RiskUnknown()
	}

	items, _ := asNumber(summary["line_items_evaluated"])
	detected, ok := asNumber(summary["violations_detected"])
	if !ok {
		detected = float64(violationCount)
	}

	switch {
	case items > 0:
		ratio := decimal.NewFromFloat(detected).
			Div(decimal.NewFromFloat(items)).
			Mul(decimal.NewFromInt(100)).
			Round(0)
		return domain.RiskOf(ratio.InexactFloat64())
	case detected > 0:
		return domain.RiskOf(100)
	default:
		return domain.RiskOf(0)
	}
}

func intOrZero(v any) int {
	if p := intPtr(v); p != nil {
		return *p
	}
	return 0
}

// normalizeViolations keeps truthy elements of an array. Elements that are
// not objects become empty violations so counts still include them.
func normalizeViolations(v any) []domain.Violation {
	items, _ := asArray(v)
	out := make([]domain.Violation, 0, len(items))
	for _, item := range items {
		if !truthy(item) {
			continue
		}
		obj, _ := asObject(item)
		out = append(out, violationFromObject(obj))
	}
	return out
}

func violationFromObject(obj map[string]any) domain.Violation {
	v := domain.Violation{
		LineID:        scalarString(obj["line_id"]),
		ExpectedPrice: numberPtr(obj["expected_price"]),
		ActualPrice:   numberPtr(obj["actual_price"]),
		Difference:    numberPtr(obj["difference"]),
		Reasoning:     obj["reasoning"],
		AppliedRule:   obj["applied_rule"],
	}
	if t, ok := asString(obj["violation_type"]); ok {
		v.ViolationType = t
	}

	ref, ok := obj["clause_reference"]
	if !ok || ref == nil {
		ref = obj["contract_clause_reference"]
	}
	switch r := ref.(type) {
	case string:
		v.ClauseReference = domain.ClauseReference{Text: r}
	case map[string]any:
		v.ClauseReference = domain.ClauseReference{Fields: r}
	}
	return v
}

func normalizeClauses(v any) []domain.ContractClause {
	items, _ := asArray(v)
	out := make([]domain.ContractClause, 0, len(items))
	for _, item := range items {
		if !truthy(item) {
			continue
		}
		obj, _ := asObject(item)
		out = append(out, domain.ContractClause{
			ContractID: scalarString(obj["contract_id"]),
			ClauseID:   scalarString(obj["clause_id"]),
			Text:       scalarString(obj["text"]),
			Similarity: numberPtr(obj["similarity"]),
		})
	}
	return out
}
