// Package cli provides the cobra command tree of the docuflow binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Global flags.
var (
	verbose   bool
	apiURL    string
	ephemeral bool
)

// Services injected by main.
var (
	invoiceService   driving.InvoiceService
	contractService  driving.ContractService
	uploadService    driving.UploadService
	workflowService  driving.WorkflowService
	reportService    driving.ReportService
	dashboardService driving.DashboardService
	settingsService  driving.SettingsService
	themeService     driving.ThemeService

	// notifications feeds TUI toasts. Nil outside the TUI.
	notifications <-chan domain.Notification
)

// Services holds every driving port the commands use.
type Services struct {
	Invoices      driving.InvoiceService
	Contracts     driving.ContractService
	Upload        driving.UploadService
	Workflow      driving.WorkflowService
	Reports       driving.ReportService
	Dashboard     driving.DashboardService
	Settings      driving.SettingsService
	Theme         driving.ThemeService
	Notifications <-chan domain.Notification
}

// Options are the global flag values handed to the Initializer.
type Options struct {
	APIURL    string
	Ephemeral bool
	Verbose   bool

	// Interactive is true for commands that own the terminal (tui).
	Interactive bool
}

// Initializer builds the services once flags are parsed.
type Initializer func(ctx context.Context, opts Options) (*Services, error)

var initializer Initializer

// SetServices injects the services used by every command.
func SetServices(s Services) {
	invoiceService = s.Invoices
	contractService = s.Contracts
	uploadService = s.Upload
	workflowService = s.Workflow
	reportService = s.Reports
	dashboardService = s.Dashboard
	settingsService = s.Settings
	themeService = s.Theme
	notifications = s.Notifications
}

// SetInitializer registers the function that wires services before a command runs.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// isTerminal reports whether stdout is a TTY. Progress output is only drawn on one.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "docuflow",
	Short: "Invoice and contract compliance from the terminal",
	Long: `DocuFlow uploads invoices and contracts to the DocuFlow backend, browses
the extracted records, asks AI questions about them and runs the compliance
workflow that scores each invoice against its contract.`,
	SilenceUsage:      true,
	PersistentPreRunE: runPersistentPreRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "DocuFlow backend URL (overrides config and DOCUFLOW_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep view state in memory only")
}

func runPersistentPreRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if initializer == nil || cmd.Name() == "version" {
		return nil
	}

	svc, err := initializer(cmd.Context(), Options{
		APIURL:      apiURL,
		Ephemeral:   ephemeral,
		Verbose:     verbose,
		Interactive: cmd.Name() == "tui",
	})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(*svc)
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// parseID parses a positive database id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", s, domain.ErrInvalidInput)
	}
	return id, nil
}

// parseIDs parses every argument with parseID.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// commandContext returns the command's context, or Background when run
// outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
