package palette

import "github.com/uamas/themekit/internal/models"

// accents holds the roles that vary by color scheme.
type accents struct {
	Primary           string
	PrimaryHover      string
	PrimaryLight      string
	PrimaryDark       string
	Secondary         string
	SecondaryHover    string
	Accent            string
	AccentHover       string
	BorderFocus       string
	SidebarBackground string
	SidebarActive     string
	InputFocus        string
}

var fontSizes = map[models.FontSize]FontSizeSet{
	models.FontSizeSmall: {
		Base: "14px",
		SM:   "12px",
		LG:   "16px",
		XL:   "18px",
		XL2:  "20px",
		XL3:  "24px",
		XL4:  "30px",
	},
	models.FontSizeMedium: {
		Base: "16px",
		SM:   "14px",
		LG:   "18px",
		XL:   "20px",
		XL2:  "24px",
		XL3:  "30px",
		XL4:  "36px",
	},
	models.FontSizeLarge: {
		Base: "18px",
		SM:   "16px",
		LG:   "20px",
		XL:   "24px",
		XL2:  "30px",
		XL3:  "36px",
		XL4:  "48px",
	},
}

// ThemeColors resolves the full palette for a mode and color scheme.
func ThemeColors(mode models.ThemeMode, scheme models.ColorScheme) Colors {
	base, table := lightBase, lightAccents
	if mode == models.ThemeModeDark {
		base, table = darkBase, darkAccents
	}

	a, ok := table[scheme]
	if !ok {
		a = table[models.DefaultThemeConfig().ColorScheme]
	}

	colors := base
	colors.Primary = a.Primary
	colors.PrimaryHover = a.PrimaryHover
	colors.PrimaryLight = a.PrimaryLight
	colors.PrimaryDark = a.PrimaryDark
	colors.Secondary = a.Secondary
	colors.SecondaryHover = a.SecondaryHover
	colors.Accent = a.Accent
	colors.AccentHover = a.AccentHover
	colors.BorderFocus = a.BorderFocus
	colors.SidebarBackground = a.SidebarBackground
	colors.SidebarActive = a.SidebarActive
	colors.InputFocus = a.InputFocus
	return colors
}

// FontSizes resolves the type scale for a font size tier.
func FontSizes(size models.FontSize) FontSizeSet {
	set, ok := fontSizes[size]
	if !ok {
		return fontSizes[models.DefaultThemeConfig().FontSize]
	}
	return set
}

// ForConfig resolves colors and sizes for a theme configuration.
func ForConfig(cfg models.ThemeConfig) (Colors, FontSizeSet) {
	return ThemeColors(cfg.Mode, cfg.ColorScheme), FontSizes(cfg.FontSize)
}
