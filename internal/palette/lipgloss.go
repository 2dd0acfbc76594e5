package palette

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from a palette.
type Styles struct {
	Colors    Colors
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Panel     lipgloss.Style
	Border    lipgloss.Style
	Focus     lipgloss.Style
	Sidebar   lipgloss.Style
	Active    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
}

// BuildStyles converts palette tokens into lipgloss styles.
func BuildStyles(colors Colors) Styles {
	return Styles{
		Colors:    colors,
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.TextPrimary)).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(colors.TextPrimary)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.TextTertiary)),
		Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Primary)).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Secondary)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Accent)),
		Panel:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.TextPrimary)).Background(lipgloss.Color(colors.CardBackground)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(colors.CardBorder)).Padding(0, 1),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Border)),
		Focus:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.BorderFocus)).Bold(true),
		Sidebar:   lipgloss.NewStyle().Foreground(lipgloss.Color(colors.SidebarText)).Background(lipgloss.Color(colors.SidebarBackground)).Padding(0, 1),
		Active:    lipgloss.NewStyle().Foreground(lipgloss.Color(colors.SidebarText)).Background(lipgloss.Color(colors.SidebarActive)).Bold(true).Padding(0, 1),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Success)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Warning)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Error)),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Info)),
	}
}

// Swatch renders a two-space block filled with a color. Values lipgloss
// cannot render (such as rgba shadows) produce an empty block.
func Swatch(value string) string {
	if _, err := ParseHex(value); err != nil {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("  ")
}
