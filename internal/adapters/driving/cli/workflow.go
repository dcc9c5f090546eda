package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Run the compliance workflow",
}

var workflowRunCmd = &cobra.Command{
	Use:   "run [invoice-id...]",
	Short: "Analyse invoices against their contracts",
	Long: `Analyse invoices against their contracts and store the report.

Without arguments the persisted selection is used (see "invoice select").
The selection is cleared after a successful run.`,
	RunE: runWorkflow,
}

func init() {
	workflowCmd.AddCommand(workflowRunCmd)
	rootCmd.AddCommand(workflowCmd)
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	if workflowService == nil {
		return errors.New("workflow service not configured")
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) == 0 && invoiceService != nil {
		ids = invoiceService.Selection()
	}
	if len(ids) == 0 {
		return domain.ErrEmptySelection
	}

	var batch *domain.WorkflowBatch
	label := fmt.Sprintf("Analysing %d invoice(s)", len(ids))
	err = withProgress(cmd, services.WorkflowProgress(), label, func() error {
		var err error
		batch, err = workflowService.Run(commandContext(cmd), ids)
		return err
	})
	if err != nil {
		return fmt.Errorf("workflow failed: %w", err)
	}

	cmd.Println(services.WorkflowCompletedMessage(batch))
	for _, r := range batch.Invoices {
		cmd.Printf("  %-16s %-10s %2d violation(s)  risk %s (%s)\n",
			r.InvoiceID, r.Status, len(r.Violations), r.RiskPercentage, r.RiskPercentage.Level())
	}
	cmd.Println()
	cmd.Println(`Run "docuflow report show" for the full report.`)
	return nil
}
