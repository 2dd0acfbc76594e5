// Package cli provides TUI launch commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/uamas/themekit/internal/tui"
)

var uiNoSync bool

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().BoolVar(&uiNoSync, "no-sync", false, "ignore changes made by other processes")
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive theme picker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "the theme picker requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use the CLI subcommands",
			NextStep: "themekit --help",
		}
	}

	return withApp(cmd, func(ctx context.Context, app *App) error {
		return tui.RunWithConfig(tui.Config{
			Store: app.Store,
			Sync:  !uiNoSync,
		})
	})
}
