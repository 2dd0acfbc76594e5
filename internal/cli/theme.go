package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/palette"
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(schemeCmd)
	rootCmd.AddCommand(fontSizeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVar(&setMode, "mode", "", "theme mode (light, dark)")
	setCmd.Flags().StringVar(&setScheme, "scheme", "", "color scheme")
	setCmd.Flags().StringVar(&setFontSize, "font-size", "", "font size tier")
}

var (
	setMode     string
	setScheme   string
	setFontSize string
)

// ThemeState is the payload returned by show and the mutation commands.
type ThemeState struct {
	Mode         models.ThemeMode   `json:"mode" yaml:"mode"`
	ColorScheme  models.ColorScheme `json:"colorScheme" yaml:"colorScheme"`
	FontSize     models.FontSize    `json:"fontSize" yaml:"fontSize"`
	Key          string             `json:"key" yaml:"key"`
	Backend      string             `json:"backend" yaml:"backend"`
	Background   string             `json:"background" yaml:"background"`
	Primary      string             `json:"primary" yaml:"primary"`
	BaseFontSize string             `json:"baseFontSize" yaml:"baseFontSize"`
}

func newThemeState(app *App, cfg models.ThemeConfig) ThemeState {
	colors, sizes := palette.ForConfig(cfg)
	return ThemeState{
		Mode:         cfg.Mode,
		ColorScheme:  cfg.ColorScheme,
		FontSize:     cfg.FontSize,
		Key:          app.Store.Key(),
		Backend:      app.Config.Storage.Backend,
		Background:   colors.Background,
		Primary:      colors.Primary,
		BaseFontSize: sizes.Base,
	}
}

func writeThemeState(out io.Writer, state ThemeState) error {
	if IsStructuredOutput() {
		return WriteOutput(out, state)
	}
	return writeKeyValues(out, [][2]string{
		{"Mode", string(state.Mode)},
		{"Color scheme", string(state.ColorScheme)},
		{"Font size", string(state.FontSize)},
		{"Background", palette.Swatch(state.Background) + " " + state.Background},
		{"Primary", palette.Swatch(state.Primary) + " " + state.Primary},
		{"Base font size", state.BaseFontSize},
		{"Storage", fmt.Sprintf("%s (%s)", state.Backend, state.Key)},
	})
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			return writeThemeState(cmd.OutOrStdout(), newThemeState(app, app.Store.Config()))
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg := app.Store.ToggleMode()
			return writeThemeState(cmd.OutOrStdout(), newThemeState(app, cfg))
		})
	},
}

var schemeCmd = &cobra.Command{
	Use:       "scheme <name>",
	Short:     "Set the color scheme",
	Long:      "Set the color scheme: emerald, blue, purple, orange or rose.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: names(models.AllColorSchemes),
	RunE: func(cmd *cobra.Command, args []string) error {
		scheme, err := models.ParseColorScheme(args[0])
		if err != nil {
			return invalidArgError(err, "themekit scheme emerald")
		}
		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg, err := app.Store.UpdateColorScheme(scheme)
			if err != nil {
				return err
			}
			return writeThemeState(cmd.OutOrStdout(), newThemeState(app, cfg))
		})
	},
}

var fontSizeCmd = &cobra.Command{
	Use:       "font-size <size>",
	Short:     "Set the font size tier",
	Long:      "Set the font size tier: small, medium or large.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: names(models.AllFontSizes),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := models.ParseFontSize(args[0])
		if err != nil {
			return invalidArgError(err, "themekit font-size medium")
		}
		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg, err := app.Store.UpdateFontSize(size)
			if err != nil {
				return err
			}
			return writeThemeState(cmd.OutOrStdout(), newThemeState(app, cfg))
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg := app.Store.Reset()
			return writeThemeState(cmd.OutOrStdout(), newThemeState(app, cfg))
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace several theme fields at once",
	Long:  "Replace the theme in one write. Fields that are not given keep their current value.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if setMode == "" && setScheme == "" && setFontSize == "" {
			return &PreflightError{
				Message:  "nothing to set",
				Hint:     "Pass at least one of --mode, --scheme or --font-size",
				NextStep: "themekit set --mode dark --scheme blue",
			}
		}
		return withApp(cmd, func(ctx context.Context, app *App) error {
			var flagErr error
			cfg, err := app.Store.Update(func(cfg *models.ThemeConfig) error {
				flagErr = applySetFlags(cfg)
				return flagErr
			})
			if flagErr != nil {
				return invalidArgError(flagErr, "themekit set --mode dark")
			}
			if err != nil {
				return err
			}
			return writeThemeState(cmd.OutOrStdout(), newThemeState(app, cfg))
		})
	},
}

// applySetFlags runs inside Store.Update so the fields not given are taken
// from the config read under the store lock.
func applySetFlags(cfg *models.ThemeConfig) error {
	if setMode != "" {
		mode, err := models.ParseThemeMode(setMode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}
	if setScheme != "" {
		scheme, err := models.ParseColorScheme(setScheme)
		if err != nil {
			return err
		}
		cfg.ColorScheme = scheme
	}
	if setFontSize != "" {
		size, err := models.ParseFontSize(setFontSize)
		if err != nil {
			return err
		}
		cfg.FontSize = size
	}
	return nil
}

func invalidArgError(err error, example string) error {
	return &PreflightError{
		Message:  err.Error(),
		Hint:     "Run with --help to list the accepted values",
		Err:      err,
		NextStep: example,
	}
}

func names[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
