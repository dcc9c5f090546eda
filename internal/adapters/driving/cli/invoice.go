package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

var (
	invoicePage        int
	invoiceSearch      string
	invoiceUnselectAll bool
)

var invoiceCmd = &cobra.Command{
	Use:     "invoice",
	Aliases: []string{"invoices"},
	Short:   "Browse and query invoices",
	Long:    `List, inspect, query and select invoices for the compliance workflow.`,
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of invoices",
	Args:  cobra.NoArgs,
	RunE:  runInvoiceList,
}

var invoiceGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceGet,
}

var invoiceQueryCmd = &cobra.Command{
	Use:   "query [id] [question]",
	Short: "Ask the AI a question about an invoice",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runInvoiceQuery,
}

var invoiceOpenCmd = &cobra.Command{
	Use:   "open [id]",
	Short: "Open the invoice PDF in the browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceOpen,
}

var invoiceURLCmd = &cobra.Command{
	Use:   "url [id]",
	Short: "Print a presigned link to the invoice PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceURL,
}

var invoiceSelectCmd = &cobra.Command{
	Use:   "select [id...]",
	Short: "Add invoices to the workflow selection",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInvoiceSelect,
}

var invoiceUnselectCmd = &cobra.Command{
	Use:   "unselect [id...]",
	Short: "Remove invoices from the workflow selection",
	RunE:  runInvoiceUnselect,
}

var invoiceSelectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Print the workflow selection",
	Args:  cobra.NoArgs,
	RunE:  runInvoiceSelection,
}

func init() {
	invoiceListCmd.Flags().IntVarP(&invoicePage, "page", "p", 1, "one-based page number")
	invoiceListCmd.Flags().StringVarP(&invoiceSearch, "search", "s", "", "filter the page")
	invoiceUnselectCmd.Flags().BoolVar(&invoiceUnselectAll, "all", false, "clear the whole selection")

	invoiceCmd.AddCommand(invoiceListCmd)
	invoiceCmd.AddCommand(invoiceGetCmd)
	invoiceCmd.AddCommand(invoiceQueryCmd)
	invoiceCmd.AddCommand(invoiceOpenCmd)
	invoiceCmd.AddCommand(invoiceURLCmd)
	invoiceCmd.AddCommand(invoiceSelectCmd)
	invoiceCmd.AddCommand(invoiceUnselectCmd)
	invoiceCmd.AddCommand(invoiceSelectionCmd)
	rootCmd.AddCommand(invoiceCmd)
}

var errInvoiceServiceMissing = errors.New("invoice service not configured")

func runInvoiceList(cmd *cobra.Command, _ []string) error {
	if invoiceService == nil {
		return errInvoiceServiceMissing
	}

	view, err := invoiceService.List(commandContext(cmd), invoicePage)
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := services.FilterInvoices(view.Invoices, invoiceSearch)
	if len(invoices) == 0 {
		cmd.Println("No invoices found.")
		return nil
	}

	selected := make(map[int64]bool)
	for _, id := range invoiceService.Selection() {
		selected[id] = true
	}

	cmd.Printf("  %-3s %-6s %-14s %-24s %12s %10s %8s  %s\n",
		"", "ID", "Invoice", "Seller", "Subtotal", "Tax", "Risk", "Mistakes")
	for _, inv := range invoices {
		mark := "[ ]"
		if selected[inv.ID] {
			mark = "[x]"
		}
		cmd.Printf("  %-3s %-6d %-14s %-24s %12s %10s %8s  %s\n",
			mark,
			inv.ID,
			truncate(inv.InvoiceID, 14),
			truncate(inv.SellerName, 24),
			services.FormatAmount(inv.SubtotalAmount),
			services.FormatAmount(inv.TaxAmount),
			inv.RiskPercentage.String(),
			mistakesLabel(inv),
		)
	}
	cmd.Println()
	cmd.Printf("Page %d of %d (%d invoices)\n", view.Page, view.TotalPages, view.Total)
	return nil
}

func mistakesLabel(inv domain.Invoice) string {
	if reportService == nil {
		return domain.MistakesNotChecked.Label()
	}
	return reportService.MistakesStatus(inv).Label()
}

func runInvoiceGet(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errInvoiceServiceMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	inv, err := invoiceService.Get(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	cmd.Printf("Invoice: %s\n", inv.InvoiceID)
	cmd.Printf("  ID:       %d\n", inv.ID)
	cmd.Printf("  Seller:   %s\n", inv.SellerName)
	if inv.SellerAddress != "" {
		cmd.Printf("  Address:  %s\n", inv.SellerAddress)
	}
	if inv.TaxID != "" {
		cmd.Printf("  Tax ID:   %s\n", inv.TaxID)
	}
	cmd.Printf("  Subtotal: %s\n", services.FormatAmount(inv.SubtotalAmount))
	cmd.Printf("  Tax:      %s\n", services.FormatAmount(inv.TaxAmount))
	if !inv.RiskPercentage.IsUnknown() {
		cmd.Printf("  Risk:     %s (%s)\n", inv.RiskPercentage, inv.RiskPercentage.Level())
	}
	if inv.CreatedAt != "" {
		cmd.Printf("  Created:  %s\n", services.FormatDateTime(inv.CreatedAt))
	}
	printExtra(cmd, inv.Extra)
	if inv.Summary != "" {
		cmd.Println()
		cmd.Println(inv.Summary)
	}
	return nil
}

// printExtra lists backend fields the client does not model.
func printExtra(cmd *cobra.Command, extra map[string]any) {
	fields := services.ExtraFields(extra)
	if len(fields) == 0 {
		return
	}
	cmd.Println()
	cmd.Println("Other fields:")
	for _, f := range fields {
		cmd.Printf("  %s: %s\n", f.Key, f.Value)
	}
}

func runInvoiceQuery(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errInvoiceServiceMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	answer, err := invoiceService.Query(commandContext(cmd), id, strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("failed to query invoice: %w", err)
	}
	cmd.Println(answer)
	return nil
}

func runInvoiceOpen(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errInvoiceServiceMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	url, err := invoiceService.Open(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("failed to open invoice: %w", err)
	}
	cmd.Printf("Opened %s\n", url)
	return nil
}

func runInvoiceURL(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errInvoiceServiceMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	url, err := invoiceService.DownloadURL(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("failed to get download URL: %w", err)
	}
	cmd.Println(url)
	return nil
}

func runInvoiceSelect(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errInvoiceServiceMissing
	}
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	invoiceService.Select(ids...)
	printSelection(cmd)
	return nil
}

func runInvoiceUnselect(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errInvoiceServiceMissing
	}
	if invoiceUnselectAll {
		invoiceService.ClearSelection()
		printSelection(cmd)
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("pass invoice ids or --all: %w", domain.ErrInvalidInput)
	}
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	invoiceService.Unselect(ids...)
	printSelection(cmd)
	return nil
}

func runInvoiceSelection(cmd *cobra.Command, _ []string) error {
	if invoiceService == nil {
		return errInvoiceServiceMissing
	}
	printSelection(cmd)
	return nil
}

func printSelection(cmd *cobra.Command) {
	ids := invoiceService.Selection()
	if len(ids) == 0 {
		cmd.Println("No invoices selected.")
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	cmd.Printf("Selected (%d): %s\n", len(ids), strings.Join(parts, ", "))
}
