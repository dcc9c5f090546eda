package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// Summarize derives display-ready statistics from a batch.
// The batch is not modified.
func Summarize(batch domain.WorkflowBatch) domain.ReportSummary {
	summary := domain.ReportSummary{
		GeneratedAt:        batch.GeneratedAt,
		TotalInvoices:      len(batch.Invoices),
		ViolationBreakdown: make(map[string]int),
		RiskBreakdown:      make(map[domain.RiskLevel]int, len(domain.RiskLevels)),
		TopViolations:      []domain.ViolationCount{},
		TopClauses:         []domain.RankedClause{},
		Violations:         []domain.FlattenedViolation{},
	}
	for _, level := range domain.RiskLevels {
		summary.RiskBreakdown[level] = 0
	}

	// firstSeen keeps breakdown ties in the order types first appear.
	var firstSeen []string
	var clauses []domain.RankedClause
	var hoursTotal float64
	var hoursSamples int

	for _, report := range batch.Invoices {
		summary.TotalViolations += len(report.Violations)
		for _, v := range report.Violations {
			key := v.ViolationType
			if key == "" {
				key = domain.UnknownViolationType
			}
			if _, seen := summary.ViolationBreakdown[key]; !seen {
				firstSeen = append(firstSeen, key)
			}
			summary.ViolationBreakdown[key]++
			summary.Violations = append(summary.Violations, domain.FlattenedViolation{
				Violation:   v,
				InvoiceID:   report.InvoiceID,
				ProcessedAt: report.ProcessedAt,
			})
		}

		if report.EvaluationSummary != nil {
			summary.LineItemsEvaluated += report.EvaluationSummary.LineItemsEvaluated
			summary.RulesEvaluated += report.EvaluationSummary.RulesEvaluated
		}

		if report.NextRunScheduledInHours != nil {
			hoursTotal += *report.NextRunScheduledInHours
			hoursSamples++
		}

		for _, c := range report.ContractClauses {
			clauses = append(clauses, domain.RankedClause{ContractClause: c, InvoiceID: report.InvoiceID})
		}

		summary.RiskBreakdown[report.RiskPercentage.Level()]++
	}

	if hoursSamples > 0 {
		avg := decimal.NewFromFloat(hoursTotal).
			Div(decimal.NewFromInt(int64(hoursSamples))).
			Round(1).
			InexactFloat64()
		summary.AverageNextRunHours = &avg
	}

	summary.TopViolations = topViolations(firstSeen, summary.ViolationBreakdown, domain.TopViolationsLimit)
	summary.TopClauses = topClauses(clauses, domain.TopClausesLimit)
	return summary
}

func topViolations(order []string, counts map[string]int, limit int) []domain.ViolationCount {
	rows := make([]domain.ViolationCount, 0, len(order))
	for _, key := range order {
		rows = append(rows, domain.ViolationCount{Type: key, Count: counts[key]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func topClauses(clauses []domain.RankedClause, limit int) []domain.RankedClause {
	ranked := make([]domain.RankedClause, len(clauses))
	copy(ranked, clauses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SimilarityOrZero() > ranked[j].SimilarityOrZero()
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// GroupByInvoice groups reports sharing an invoice_id, in order of first
// appearance. Re-runs stay distinct entries within their group.
func GroupByInvoice(batch domain.WorkflowBatch) []domain.InvoiceGroup {
	index := make(map[string]int)
	var groups []domain.InvoiceGroup
	for _, report := range batch.Invoices {
		i, ok := index[report.InvoiceID]
		if !ok {
			i = len(groups)
			index[report.InvoiceID] = i
			groups = append(groups, domain.InvoiceGroup{InvoiceID: report.InvoiceID})
		}
		groups[i].Reports = append(groups[i].Reports, report)
	}
	return groups
}

// MistakesStatusOf reports whether invoice had violations in batch.
// When an invoice_id was run more than once, the last run decides.
func MistakesStatusOf(invoice domain.Invoice, batch *domain.WorkflowBatch) domain.MistakesStatus {
	if invoice.InvoiceID == "" || batch == nil {
		return domain.MistakesNotChecked
	}
	status := domain.MistakesNotChecked
	for _, report := range batch.Invoices {
		if report.InvoiceID != invoice.InvoiceID {
			continue
		}
		if len(report.Violations) > 0 {
			status = domain.MistakesFound
		} else {
			status = domain.MistakesNone
		}
	}
	return status
}

// RiskBreakdownOfInvoices counts invoices per risk level, for the invoices pie chart.
func RiskBreakdownOfInvoices(invoices []domain.Invoice) map[domain.RiskLevel]int {
	out := make(map[domain.RiskLevel]int, len(domain.RiskLevels))
	for _, level := range domain.RiskLevels {
		out[level] = 0
	}
	for _, inv := range invoices {
		out[inv.RiskPercentage.Level()]++
	}
	return out
}
