package palette

import "github.com/uamas/themekit/internal/models"

// lightBase holds the neutral and status roles shared by every light scheme.
var lightBase = Colors{
	Background:          "#FFFFFF",
	BackgroundSecondary: "#F9FAFB",
	BackgroundTertiary:  "#F3F4F6",
	Surface:             "#FFFFFF",
	TextPrimary:         "#111827",
	TextSecondary:       "#4B5563",
	TextTertiary:        "#6B7280",
	TextInverse:         "#FFFFFF",
	Border:              "#E5E7EB",
	BorderLight:         "#F3F4F6",
	Success:             "#16A34A",
	Warning:             "#D97706",
	Error:               "#DC2626",
	Info:                "#2563EB",
	CardBackground:      "#FFFFFF",
	CardBorder:          "#E5E7EB",
	SidebarText:         "#FFFFFF",
	InputBackground:     "#FFFFFF",
	InputBorder:         "#D1D5DB",
	Shadow:              "rgba(0, 0, 0, 0.1)",
}

var lightAccents = map[models.ColorScheme]accents{
	models.ColorSchemeEmerald: {
		Primary:           "#059669",
		PrimaryHover:      "#047857",
		PrimaryLight:      "#D1FAE5",
		PrimaryDark:       "#065F46",
		Secondary:         "#0D9488",
		SecondaryHover:    "#0F766E",
		Accent:            "#34D399",
		AccentHover:       "#10B981",
		BorderFocus:       "#10B981",
		SidebarBackground: "#064E3B",
		SidebarActive:     "#047857",
		InputFocus:        "#10B981",
	},
	models.ColorSchemeBlue: {
		Primary:           "#2563EB",
		PrimaryHover:      "#1D4ED8",
		PrimaryLight:      "#DBEAFE",
		PrimaryDark:       "#1E40AF",
		Secondary:         "#4F46E5",
		SecondaryHover:    "#4338CA",
		Accent:            "#60A5FA",
		AccentHover:       "#3B82F6",
		BorderFocus:       "#3B82F6",
		SidebarBackground: "#1E3A8A",
		SidebarActive:     "#1D4ED8",
		InputFocus:        "#3B82F6",
	},
	models.ColorSchemePurple: {
		Primary:           "#9333EA",
		PrimaryHover:      "#7E22CE",
		PrimaryLight:      "#F3E8FF",
		PrimaryDark:       "#6B21A8",
		Secondary:         "#C026D3",
		SecondaryHover:    "#A21CAF",
		Accent:            "#C084FC",
		AccentHover:       "#A855F7",
		BorderFocus:       "#A855F7",
		SidebarBackground: "#581C87",
		SidebarActive:     "#7E22CE",
		InputFocus:        "#A855F7",
	},
	models.ColorSchemeOrange: {
		Primary:           "#EA580C",
		PrimaryHover:      "#C2410C",
		PrimaryLight:      "#FFEDD5",
		PrimaryDark:       "#9A3412",
		Secondary:         "#D97706",
		SecondaryHover:    "#B45309",
		Accent:            "#FB923C",
		AccentHover:       "#F97316",
		BorderFocus:       "#F97316",
		SidebarBackground: "#7C2D12",
		SidebarActive:     "#C2410C",
		InputFocus:        "#F97316",
	},
	models.ColorSchemeRose: {
		Primary:           "#E11D48",
		PrimaryHover:      "#BE123C",
		PrimaryLight:      "#FFE4E6",
		PrimaryDark:       "#9F1239",
		Secondary:         "#DB2777",
		SecondaryHover:    "#BE185D",
		Accent:            "#FB7185",
		AccentHover:       "#F43F5E",
		BorderFocus:       "#F43F5E",
		SidebarBackground: "#881337",
		SidebarActive:     "#BE123C",
		InputFocus:        "#F43F5E",
	},
}
