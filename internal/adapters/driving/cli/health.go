package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the DocuFlow backend",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if dashboardService == nil {
		return errors.New("dashboard service not configured")
	}

	state := dashboardService.CheckHealth(commandContext(cmd))
	cmd.Printf("Backend: %s (%s)\n", state.Label(), state)
	return nil
}
