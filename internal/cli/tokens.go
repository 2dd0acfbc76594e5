package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/palette"
	"github.com/uamas/themekit/internal/theme"
)

var (
	tokensMode   string
	tokensScheme string
	tokensSize   string
)

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(exportCmd)

	for _, cmd := range []*cobra.Command{tokensCmd, previewCmd} {
		cmd.Flags().StringVar(&tokensMode, "mode", "", "preview a mode instead of the current one")
		cmd.Flags().StringVar(&tokensScheme, "scheme", "", "preview a color scheme instead of the current one")
		cmd.Flags().StringVar(&tokensSize, "font-size", "", "preview a font size tier instead of the current one")
	}
}

// TokenRow is one resolved custom property.
type TokenRow struct {
	Variable string `json:"variable" yaml:"variable"`
	Key      string `json:"key" yaml:"key"`
	Value    string `json:"value" yaml:"value"`
}

// ThemeExport is the payload returned by `themekit export`.
type ThemeExport struct {
	Config    models.ThemeConfig  `json:"config" yaml:"config"`
	Colors    []palette.Token     `json:"colors" yaml:"colors"`
	FontSizes []palette.Token     `json:"fontSizes" yaml:"fontSizes"`
	Document  theme.DocumentState `json:"document" yaml:"document"`
}

// resolvePreviewConfig overlays the preview flags on cfg without saving.
func resolvePreviewConfig(cfg models.ThemeConfig) (models.ThemeConfig, error) {
	if tokensMode != "" {
		mode, err := models.ParseThemeMode(tokensMode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if tokensScheme != "" {
		scheme, err := models.ParseColorScheme(tokensScheme)
		if err != nil {
			return cfg, err
		}
		cfg.ColorScheme = scheme
	}
	if tokensSize != "" {
		size, err := models.ParseFontSize(tokensSize)
		if err != nil {
			return cfg, err
		}
		cfg.FontSize = size
	}
	return cfg, nil
}

func tokenRows(cfg models.ThemeConfig) []TokenRow {
	colors, sizes := palette.ForConfig(cfg)
	rows := make([]TokenRow, 0, 40)
	for _, token := range colors.Tokens() {
		rows = append(rows, TokenRow{Variable: palette.ColorVariable(token.Key), Key: token.Key, Value: token.Value})
	}
	for _, token := range sizes.Tokens() {
		rows = append(rows, TokenRow{Variable: palette.FontSizeVariable(token.Key), Key: token.Key, Value: token.Value})
	}
	return rows
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List the design tokens of the current theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg, err := resolvePreviewConfig(app.Store.Config())
			if err != nil {
				return invalidArgError(err, "themekit tokens --mode dark")
			}

			rows := tokenRows(cfg)
			if IsStructuredOutput() {
				return WriteOutput(cmd.OutOrStdout(), rows)
			}

			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				table = append(table, []string{row.Variable, row.Value})
			}
			return writeTable(cmd.OutOrStdout(), []string{"VARIABLE", "VALUE"}, table)
		})
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the palette in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg, err := resolvePreviewConfig(app.Store.Config())
			if err != nil {
				return invalidArgError(err, "themekit preview --scheme rose")
			}
			return writePreview(cmd.OutOrStdout(), cfg)
		})
	},
}

func writePreview(out io.Writer, cfg models.ThemeConfig) error {
	colors, sizes := palette.ForConfig(cfg)
	styles := palette.BuildStyles(colors)

	var b strings.Builder
	b.WriteString(styles.Title.Render("Theme " + cfg.String()))
	b.WriteString("\n\n")

	for _, token := range colors.Tokens() {
		fmt.Fprintf(&b, "%s %-30s %s\n", palette.Swatch(token.Value), palette.ColorVariable(token.Key), token.Value)
	}

	b.WriteString("\n")
	card := lipgloss.JoinVertical(lipgloss.Left,
		styles.Primary.Render("Primary action"),
		styles.Secondary.Render("Secondary action"),
		styles.Accent.Render("Accent"),
		styles.Muted.Render("Muted caption"),
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Success.Render("success "),
			styles.Warning.Render("warning "),
			styles.Error.Render("error "),
			styles.Info.Render("info"),
		),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, styles.Sidebar.Render("Sidebar\n"+styles.Active.Render("Active")), " ", styles.Panel.Render(card)))
	b.WriteString("\n\n")

	scale := make([]string, 0, 7)
	for _, token := range sizes.Tokens() {
		scale = append(scale, token.Key+"="+token.Value)
	}
	b.WriteString(styles.Muted.Render("Type scale: " + strings.Join(scale, " ")))
	b.WriteString("\n")

	_, err := io.WriteString(out, b.String())
	return err
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the theme with all derived tokens",
	Long:  "Export the theme configuration, its tokens and the applied document. Defaults to JSON.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			cfg := app.Store.Config()
			colors, sizes := palette.ForConfig(cfg)
			export := ThemeExport{
				Config:    cfg,
				Colors:    colors.Tokens(),
				FontSizes: sizes.Tokens(),
				Document:  app.Document.Snapshot(),
			}
			return WriteOutput(cmd.OutOrStdout(), export)
		})
	},
}
