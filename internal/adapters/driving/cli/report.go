package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"reports"},
	Short:   "Inspect the latest workflow report",
}

var reportShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarise the latest workflow report",
	Args:  cobra.NoArgs,
	RunE:  runReportShow,
}

var reportInvoiceCmd = &cobra.Command{
	Use:   "invoice [invoice-id]",
	Short: "Show every run of one invoice number",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportInvoice,
}

var reportExportCmd = &cobra.Command{
	Use:   "export [file.xlsx]",
	Short: "Export the latest report to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportExport,
}

var reportClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored report",
	Args:  cobra.NoArgs,
	RunE:  runReportClear,
}

func init() {
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportInvoiceCmd)
	reportCmd.AddCommand(reportExportCmd)
	reportCmd.AddCommand(reportClearCmd)
	rootCmd.AddCommand(reportCmd)
}

var errReportServiceMissing = errors.New("report service not configured")

func runReportShow(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errReportServiceMissing
	}

	_, summary, err := reportService.Current()
	if err != nil {
		return err
	}

	cmd.Println("Workflow Report")
	cmd.Println("===============")
	cmd.Printf("  Generated:  %s\n", services.FormatDateTime(summary.GeneratedAt))
	cmd.Printf("  Invoices:   %d\n", summary.TotalInvoices)
	cmd.Printf("  Violations: %d\n", summary.TotalViolations)
	cmd.Printf("  Line items: %d evaluated\n", summary.LineItemsEvaluated)
	cmd.Printf("  Rules:      %d evaluated\n", summary.RulesEvaluated)
	if summary.AverageNextRunHours != nil {
		cmd.Printf("  Next run:   in %.1f hours (average)\n", *summary.AverageNextRunHours)
	}
	cmd.Println()

	cmd.Println("[Risk]")
	for _, level := range domain.RiskLevels {
		cmd.Printf("  %-7s %d\n", level, summary.RiskBreakdown[level])
	}
	cmd.Println()

	if len(summary.TopViolations) > 0 {
		cmd.Println("[Top violations]")
		for _, v := range summary.TopViolations {
			cmd.Printf("  %3d  %s\n", v.Count, v.Type)
		}
		cmd.Println()
	}

	if len(summary.TopClauses) > 0 {
		cmd.Println("[Top clauses]")
		for _, c := range summary.TopClauses {
			cmd.Printf("  %4s  %s %s  %s\n", services.FormatSimilarity(c.Similarity), c.InvoiceID, c.ClauseID, truncate(c.Text, 60))
		}
	}
	return nil
}

func runReportInvoice(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errReportServiceMissing
	}

	group, err := reportService.Invoice(args[0])
	if err != nil {
		return fmt.Errorf("no report for invoice %s: %w", args[0], err)
	}

	cmd.Printf("Invoice %s (%d run(s))\n", group.InvoiceID, len(group.Reports))
	for i, r := range group.Reports {
		cmd.Println()
		cmd.Printf("Run %d: %s", i+1, r.Status)
		if r.ProcessedAt != "" {
			cmd.Printf(" at %s", services.FormatDateTime(r.ProcessedAt))
		}
		cmd.Println()
		cmd.Printf("  Risk: %s (%s)\n", r.RiskPercentage, r.RiskPercentage.Level())
		if r.EvaluationSummary != nil {
			cmd.Printf("  Evaluated %d line item(s) against %d rule(s)\n",
				r.EvaluationSummary.LineItemsEvaluated, r.EvaluationSummary.RulesEvaluated)
		}
		for _, v := range r.Violations {
			cmd.Printf("  - %s", v.ViolationType)
			if v.LineID != "" {
				cmd.Printf(" (line %s)", v.LineID)
			}
			if v.ExpectedPrice != nil || v.ActualPrice != nil {
				cmd.Printf(": expected %s, actual %s", services.FormatAmount(v.ExpectedPrice), services.FormatAmount(v.ActualPrice))
			}
			cmd.Println()
			if ref := v.ClauseReference.String(); ref != "" {
				cmd.Printf("    clause %s\n", ref)
			}
		}
	}
	return nil
}

func runReportExport(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errReportServiceMissing
	}

	if err := reportService.Export(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.Printf("Report exported to %s\n", args[0])
	return nil
}

func runReportClear(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errReportServiceMissing
	}

	reportService.Clear()
	cmd.Println("Report data cleared.")
	return nil
}
