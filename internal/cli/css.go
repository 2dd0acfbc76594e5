package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var cssOutput string

func init() {
	rootCmd.AddCommand(cssCmd)
	cssCmd.Flags().StringVarP(&cssOutput, "output", "o", "", "write the stylesheet to a file (default css.output or stdout)")
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Render the applied theme as a stylesheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			path := cssOutput
			if path == "" {
				path = app.Config.CSS.Output
			}
			if path == "" || path == "-" {
				return app.Document.WriteCSS(cmd.OutOrStdout())
			}

			step := startProgress("Writing " + path)
			if err := writeFileAtomic(path, []byte(app.Document.CSS())); err != nil {
				step.Fail(err)
				return err
			}
			step.Done()
			logger.Info().Str("path", path).Msg("stylesheet written")
			return nil
		})
	},
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".themekit-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
