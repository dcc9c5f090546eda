// Package xlsx exports workflow reports as Excel workbooks.
package xlsx

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
)

// Sheet names in workbook order.
const (
	SheetSummary    = "Summary"
	SheetViolations = "Violations"
	SheetClauses    = "Clauses"
	SheetRuns       = "Runs"
)

var (
	violationHeader = []any{"Invoice ID", "Violation Type", "Line ID", "Expected Price", "Actual Price", "Difference", "Clause Reference", "Processed At"}
	clauseHeader    = []any{"Invoice ID", "Contract ID", "Clause ID", "Similarity", "Text"}
	runHeader       = []any{"Invoice ID", "Invoice DB ID", "Status", "Processed At", "Violations", "Risk %", "Risk Level", "Next Run (hours)"}
)

// Ensure Exporter implements the interface.
var _ driven.ReportExporter = (*Exporter)(nil)

// Exporter writes one workbook per call.
type Exporter struct{}

// New creates an exporter.
func New() *Exporter {
	return &Exporter{}
}

// Export writes batch and summary to path, replacing any existing file.
func (e *Exporter) Export(ctx context.Context, path string, batch domain.WorkflowBatch, summary domain.ReportSummary) error {
	if ext := filepath.Ext(path); ext != ".xlsx" {
		return fmt.Errorf("export path must end in .xlsx, got %q: %w", ext, domain.ErrInvalidInput)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{SheetViolations, SheetClauses, SheetRuns} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	writers := []struct {
		sheet string
		rows  [][]any
	}{
		{SheetSummary, summaryRows(summary)},
		{SheetViolations, violationRows(summary)},
		{SheetClauses, clauseRows(batch)},
		{SheetRuns, runRows(batch)},
	}
	for _, w := range writers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeRows(f, w.sheet, w.rows); err != nil {
			return err
		}
		if err := f.SetRowStyle(w.sheet, 1, 1, bold); err != nil {
			return fmt.Errorf("failed to style %s header: %w", w.sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func summaryRows(s domain.ReportSummary) [][]any {
	rows := [][]any{
		{"Metric", "Value"},
		{"Generated At", s.GeneratedAt},
		{"Invoices", s.TotalInvoices},
		{"Violations", s.TotalViolations},
		{"Line Items Evaluated", s.LineItemsEvaluated},
		{"Rules Evaluated", s.RulesEvaluated},
		{"Average Next Run (hours)", optional(s.AverageNextRunHours)},
	}
	for _, level := range domain.RiskLevels {
		rows = append(rows, []any{"Risk " + string(level), s.RiskBreakdown[level]})
	}
	for _, v := range s.TopViolations {
		rows = append(rows, []any{"Violation: " + v.Type, v.Count})
	}
	return rows
}

func violationRows(s domain.ReportSummary) [][]any {
	rows := [][]any{violationHeader}
	for _, v := range s.Violations {
		rows = append(rows, []any{
			v.InvoiceID,
			v.ViolationType,
			v.LineID,
			optional(v.ExpectedPrice),
			optional(v.ActualPrice),
			optional(v.Difference),
			v.ClauseReference.String(),
			v.ProcessedAt,
		})
	}
	return rows
}

func clauseRows(batch domain.WorkflowBatch) [][]any {
	rows := [][]any{clauseHeader}
	for _, report := range batch.Invoices {
		for _, c := range report.ContractClauses {
			rows = append(rows, []any{report.InvoiceID, c.ContractID, c.ClauseID, optional(c.Similarity), c.Text})
		}
	}
	return rows
}

func runRows(batch domain.WorkflowBatch) [][]any {
	rows := [][]any{runHeader}
	for _, report := range batch.Invoices {
		var dbID any = ""
		if report.InvoiceDBID != nil {
			dbID = *report.InvoiceDBID
		}
		var risk any = ""
		if v, ok := report.RiskPercentage.Value(); ok {
			risk = v
		}
		rows = append(rows, []any{
			report.InvoiceID,
			dbID,
			report.Status,
			report.ProcessedAt,
			len(report.Violations),
			risk,
			string(report.RiskPercentage.Level()),
			optional(report.NextRunScheduledInHours),
		})
	}
	return rows
}

// optional renders a nil pointer as an empty cell.
func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
