package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uamas/themekit/internal/config"
	"github.com/uamas/themekit/internal/presets"
)

var (
	presetDescription string
	presetForce       bool
)

// presetDirsFunc returns the project and config directories searched for
// presets. Swapped in tests.
var presetDirsFunc = func() (string, string) {
	project, err := os.Getwd()
	if err != nil {
		project = ""
	}
	return project, config.ConfigDir()
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)
	presetCmd.AddCommand(presetApplyCmd)
	presetCmd.AddCommand(presetSaveCmd)

	presetSaveCmd.Flags().StringVarP(&presetDescription, "description", "d", "", "preset description")
	presetSaveCmd.Flags().BoolVar(&presetForce, "force", false, "overwrite an existing preset file")
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named theme presets",
	Long: `Presets are named themes stored as YAML. They are read from .themekit/presets
in the current directory, then the presets directory next to the config file,
then the built-in set. The first preset with a given name wins.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := presets.LoadAll(presetDirsFunc())
		if err != nil {
			return err
		}
		if IsStructuredOutput() {
			return WriteOutput(cmd.OutOrStdout(), all)
		}

		rows := make([][]string, 0, len(all))
		for _, preset := range all {
			rows = append(rows, []string{preset.Name, preset.Config().String(), preset.Source, preset.Description})
		}
		return writeTable(cmd.OutOrStdout(), []string{"NAME", "THEME", "SOURCE", "DESCRIPTION"}, rows)
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, err := findPreset(args[0])
		if err != nil {
			return err
		}
		if IsStructuredOutput() {
			return WriteOutput(cmd.OutOrStdout(), preset)
		}
		return writeKeyValues(cmd.OutOrStdout(), [][2]string{
			{"Name", preset.Name},
			{"Description", preset.Description},
			{"Mode", string(preset.Mode)},
			{"Color scheme", string(preset.ColorScheme)},
			{"Font size", string(preset.FontSize)},
			{"Source", preset.Source},
		})
	},
}

var presetApplyCmd = &cobra.Command{
	Use:   "apply <name>",
	Short: "Apply a preset as the current theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, err := findPreset(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg := preset.Config()
			if err := app.Store.Save(cfg); err != nil {
				return err
			}
			logger.Info().Str("preset", preset.Name).Str("theme", cfg.String()).Msg("preset applied")
			return writeThemeState(cmd.OutOrStdout(), newThemeState(app, cfg))
		})
	},
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current theme as a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("invalid preset name %q", args[0])
		}

		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg := app.Store.Config()
			preset := &presets.Preset{
				Name:        name,
				Description: presetDescription,
				Mode:        cfg.Mode,
				ColorScheme: cfg.ColorScheme,
				FontSize:    cfg.FontSize,
			}

			_, configDir := presetDirsFunc()
			path := filepath.Join(configDir, "presets", name+".yaml")
			if _, err := os.Stat(path); err == nil && !presetForce {
				return &PreflightError{
					Message:  fmt.Sprintf("preset file %s already exists", path),
					Hint:     "Pass --force to overwrite it",
					NextStep: fmt.Sprintf("themekit preset save %s --force", name),
				}
			}

			data, err := presets.Marshal(preset)
			if err != nil {
				return fmt.Errorf("failed to encode preset: %w", err)
			}
			if err := writeFileAtomic(path, data); err != nil {
				return err
			}
			preset.Source = path

			if IsStructuredOutput() {
				return WriteOutput(cmd.OutOrStdout(), preset)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %s (%s) to %s\n", name, cfg, path)
			return err
		})
	},
}

func findPreset(name string) (*presets.Preset, error) {
	project, configDir := presetDirsFunc()
	preset, err := presets.Find(project, configDir, strings.TrimSpace(name))
	if errors.Is(err, presets.ErrPresetNotFound) {
		return nil, &PreflightError{
			Message:  err.Error(),
			Hint:     "List the available presets",
			NextStep: "themekit preset list",
			Err:      err,
		}
	}
	return preset, err
}
