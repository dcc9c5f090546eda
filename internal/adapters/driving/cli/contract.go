package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

var (
	contractPage   int
	contractSearch string
)

var contractCmd = &cobra.Command{
	Use:     "contract",
	Aliases: []string{"contracts"},
	Short:   "Browse and query contracts",
}

var contractListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of contracts",
	Args:  cobra.NoArgs,
	RunE:  runContractList,
}

var contractGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractGet,
}

var contractQueryCmd = &cobra.Command{
	Use:   "query [id] [question]",
	Short: "Ask the AI a question about a contract",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runContractQuery,
}

var contractOpenCmd = &cobra.Command{
	Use:   "open [id]",
	Short: "Open the contract PDF in the browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractOpen,
}

var contractURLCmd = &cobra.Command{
	Use:   "url [id]",
	Short: "Print a presigned link to the contract PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractURL,
}

func init() {
	contractListCmd.Flags().IntVarP(&contractPage, "page", "p", 1, "one-based page number")
	contractListCmd.Flags().StringVarP(&contractSearch, "search", "s", "", "filter the page")

	contractCmd.AddCommand(contractListCmd)
	contractCmd.AddCommand(contractGetCmd)
	contractCmd.AddCommand(contractQueryCmd)
	contractCmd.AddCommand(contractOpenCmd)
	contractCmd.AddCommand(contractURLCmd)
	rootCmd.AddCommand(contractCmd)
}

var errContractServiceMissing = errors.New("contract service not configured")

func runContractList(cmd *cobra.Command, _ []string) error {
	if contractService == nil {
		return errContractServiceMissing
	}

	view, err := contractService.List(commandContext(cmd), contractPage)
	if err != nil {
		return fmt.Errorf("failed to list contracts: %w", err)
	}

	contracts := services.FilterContracts(view.Contracts, contractSearch)
	if len(contracts) == 0 {
		cmd.Println("No contracts found.")
		return nil
	}

	for _, c := range contracts {
		cmd.Printf("  %-6d %-20s %s\n", c.ID, truncate(c.ContractID, 20), services.FormatDate(c.CreatedAt))
		if c.Summary != "" {
			cmd.Printf("         %s\n", truncate(c.Summary, 80))
		}
	}
	cmd.Println()
	cmd.Printf("Page %d of %d (%d contracts)\n", view.Page, view.TotalPages, view.Total)
	return nil
}

func runContractGet(cmd *cobra.Command, args []string) error {
	if contractService == nil {
		return errContractServiceMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	c, err := contractService.Get(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("failed to get contract: %w", err)
	}

	cmd.Printf("Contract: %s\n", c.ContractID)
	cmd.Printf("  ID:      %d\n", c.ID)
	if c.CreatedAt != "" {
		cmd.Printf("  Created: %s\n", services.FormatDateTime(c.CreatedAt))
	}
	printExtra(cmd, c.Extra)
	if c.Summary != "" {
		cmd.Println()
		cmd.Println(c.Summary)
	}
	if c.Text != "" {
		cmd.Println()
		cmd.Println(c.Text)
	}
	return nil
}

func runContractQuery(cmd *cobra.Command, args []string) error {
	if contractService == nil {
		return errContractServiceMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	answer, err := contractService.Query(commandContext(cmd), id, strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("failed to query contract: %w", err)
	}
	cmd.Println(answer)
	return nil
}

func runContractOpen(cmd *cobra.Command, args []string) error {
	if contractService == nil {
		return errContractServiceMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	url, err := contractService.Open(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("failed to open contract: %w", err)
	}
	cmd.Printf("Opened %s\n", url)
	return nil
}

func runContractURL(cmd *cobra.Command, args []string) error {
	if contractService == nil {
		return errContractServiceMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	url, err := contractService.DownloadURL(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("failed to get download URL: %w", err)
	}
	cmd.Println(url)
	return nil
}
