package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for DocuFlow.

The TUI shows the dashboard, browses invoices and contracts, uploads PDFs,
runs the compliance workflow on selected invoices and drills into reports.

Controls:
  ↑/k, ↓/j - Navigate
  ←/p, →/n - Previous / next page
  Enter    - Select / Submit
  Space    - Toggle invoice selection
  /        - Search
  w        - Run workflow
  Ctrl+T   - Toggle theme
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts collects the injected services for the TUI.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Invoices:  invoiceService,
		Contracts: contractService,
		Dashboard: dashboardService,
		Workflow:  workflowService,
		Reports:   reportService,
		Upload:    uploadService,
		Theme:     themeService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("TUI crashed")
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd)).WithNotifications(notifications)

	// Log lines would corrupt the alt screen; failures reach the user as toasts.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
