package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the backend connection and storage settings.

Settings are stored in ~/.docuflow/config.toml. The environment variable
DOCUFLOW_API_BASE_URL and the --api-url flag override the stored URL.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL:   %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout:    %ds\n", settings.API.TimeoutSeconds)
	if settings.API.RateLimit > 0 {
		cmd.Printf("  Rate limit: %g req/s\n", settings.API.RateLimit)
	} else {
		cmd.Printf("  Rate limit: unlimited\n")
	}
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.RedisURL != "" {
		cmd.Printf("  Redis:   %s\n", settings.Storage.RedisURL)
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	cmd.Printf("Keys: %v\n", settingsService.Keys())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
