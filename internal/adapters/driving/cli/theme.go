package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the TUI colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	if themeService == nil {
		return errors.New("theme service not configured")
	}

	if len(args) == 0 {
		cmd.Printf("Theme: %s\n", themeService.Theme())
		return nil
	}

	var theme domain.Theme
	if args[0] == "toggle" {
		theme = themeService.Toggle()
	} else {
		theme = domain.Theme(args[0])
		if err := themeService.SetTheme(theme); err != nil {
			return err
		}
	}
	cmd.Printf("Theme set to %s\n", theme)
	return nil
}
