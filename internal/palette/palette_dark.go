package palette

import "github.com/uamas/themekit/internal/models"

// darkBase sits on a pure black background. Status colors are lifted for
// contrast but stay the same hue as the light base.
var darkBase = Colors{
	Background:          "#000000",
	BackgroundSecondary: "#0A0A0A",
	BackgroundTertiary:  "#171717",
	Surface:             "#121212",
	TextPrimary:         "#F9FAFB",
	TextSecondary:       "#D1D5DB",
	TextTertiary:        "#9CA3AF",
	TextInverse:         "#000000",
	Border:              "#262626",
	BorderLight:         "#1F1F1F",
	Success:             "#22C55E",
	Warning:             "#F59E0B",
	Error:               "#EF4444",
	Info:                "#3B82F6",
	CardBackground:      "#0A0A0A",
	CardBorder:          "#262626",
	SidebarText:         "#F9FAFB",
	InputBackground:     "#121212",
	InputBorder:         "#333333",
	Shadow:              "rgba(0, 0, 0, 0.6)",
}

var darkAccents = map[models.ColorScheme]accents{
	models.ColorSchemeEmerald: {
		Primary:           "#34D399",
		PrimaryHover:      "#6EE7B7",
		PrimaryLight:      "#064E3B",
		PrimaryDark:       "#10B981",
		Secondary:         "#2DD4BF",
		SecondaryHover:    "#5EEAD4",
		Accent:            "#6EE7B7",
		AccentHover:       "#A7F3D0",
		BorderFocus:       "#34D399",
		SidebarBackground: "#000000",
		SidebarActive:     "#064E3B",
		InputFocus:        "#34D399",
	},
	models.ColorSchemeBlue: {
		Primary:           "#60A5FA",
		PrimaryHover:      "#93C5FD",
		PrimaryLight:      "#1E3A8A",
		PrimaryDark:       "#3B82F6",
		Secondary:         "#818CF8",
		SecondaryHover:    "#A5B4FC",
		Accent:            "#93C5FD",
		AccentHover:       "#BFDBFE",
		BorderFocus:       "#60A5FA",
		SidebarBackground: "#000000",
		SidebarActive:     "#1E3A8A",
		InputFocus:        "#60A5FA",
	},
	models.ColorSchemePurple: {
		Primary:           "#C084FC",
		PrimaryHover:      "#D8B4FE",
		PrimaryLight:      "#581C87",
		PrimaryDark:       "#A855F7",
		Secondary:         "#E879F9",
		SecondaryHover:    "#F0ABFC",
		Accent:            "#D8B4FE",
		AccentHover:       "#E9D5FF",
		BorderFocus:       "#C084FC",
		SidebarBackground: "#000000",
		SidebarActive:     "#581C87",
		InputFocus:        "#C084FC",
	},
	models.ColorSchemeOrange: {
		Primary:           "#FB923C",
		PrimaryHover:      "#FDBA74",
		PrimaryLight:      "#7C2D12",
		PrimaryDark:       "#F97316",
		Secondary:         "#FBBF24",
		SecondaryHover:    "#FCD34D",
		Accent:            "#FDBA74",
		AccentHover:       "#FED7AA",
		BorderFocus:       "#FB923C",
		SidebarBackground: "#000000",
		SidebarActive:     "#7C2D12",
		InputFocus:        "#FB923C",
	},
	models.ColorSchemeRose: {
		Primary:           "#FB7185",
		PrimaryHover:      "#FDA4AF",
		PrimaryLight:      "#881337",
		PrimaryDark:       "#F43F5E",
		Secondary:         "#F472B6",
		SecondaryHover:    "#F9A8D4",
		Accent:            "#FDA4AF",
		AccentHover:       "#FECDD3",
		BorderFocus:       "#FB7185",
		SidebarBackground: "#000000",
		SidebarActive:     "#881337",
		InputFocus:        "#FB7185",
	},
}
