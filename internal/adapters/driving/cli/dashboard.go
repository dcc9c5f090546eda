package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

var dashboardSearch string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show document counts, backend health and recent uploads",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardSearch, "search", "s", "", "filter recent uploads")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if dashboardService == nil {
		return errors.New("dashboard service not configured")
	}

	view, err := dashboardService.Load(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	cmd.Println("Dashboard")
	cmd.Println("=========")
	cmd.Printf("  Backend:   %s\n", view.Health.Label())
	cmd.Printf("  Documents: %d\n", view.TotalDocuments())
	cmd.Printf("  Invoices:  %d\n", view.InvoiceTotal)
	cmd.Printf("  Contracts: %d\n", view.ContractTotal)
	cmd.Println()

	if len(view.Errors) > 0 {
		cards := make([]string, 0, len(view.Errors))
		for card := range view.Errors {
			cards = append(cards, card)
		}
		sort.Strings(cards)
		for _, card := range cards {
			cmd.Printf("  ! %s: %v\n", card, view.Errors[card])
		}
		cmd.Println()
	}

	recent := dashboardService.RecentUploads(view, dashboardSearch)
	if len(recent) == 0 {
		cmd.Println("No recent uploads.")
		return nil
	}

	cmd.Println("Recent uploads:")
	for _, u := range recent {
		cmd.Printf("  [%s] %-20s %s\n", u.Type, u.Label, services.FormatDate(u.CreatedAt))
		if u.Summary != "" {
			cmd.Printf("      %s\n", truncate(u.Summary, 80))
		}
	}
	return nil
}

// truncate shortens s to at most n runes, ending with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
