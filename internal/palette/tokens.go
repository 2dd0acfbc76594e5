package palette

import "strings"

// Colors defines every named color role consumed by the UI.
type Colors struct {
	Primary        string
	PrimaryHover   string
	PrimaryLight   string
	PrimaryDark    string
	Secondary      string
	SecondaryHover string
	Accent         string
	AccentHover    string

	Background          string
	BackgroundSecondary string
	BackgroundTertiary  string
	Surface             string

	TextPrimary   string
	TextSecondary string
	TextTertiary  string
	TextInverse   string

	Border      string
	BorderLight string
	BorderFocus string

	Success string
	Warning string
	Error   string
	Info    string

	CardBackground    string
	CardBorder        string
	SidebarBackground string
	SidebarText       string
	SidebarActive     string
	InputBackground   string
	InputBorder       string
	InputFocus        string
	Shadow            string
}

// Token is a single resolved value keyed by its camelCase role name.
type Token struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Tokens lists every color role in a stable order.
func (c Colors) Tokens() []Token {
	return []Token{
		{Key: "primary", Value: c.Primary},
		{Key: "primaryHover", Value: c.PrimaryHover},
		{Key: "primaryLight", Value: c.PrimaryLight},
		{Key: "primaryDark", Value: c.PrimaryDark},
		{Key: "secondary", Value: c.Secondary},
		{Key: "secondaryHover", Value: c.SecondaryHover},
		{Key: "accent", Value: c.Accent},
		{Key: "accentHover", Value: c.AccentHover},
		{Key: "background", Value: c.Background},
		{Key: "backgroundSecondary", Value: c.BackgroundSecondary},
		{Key: "backgroundTertiary", Value: c.BackgroundTertiary},
		{Key: "surface", Value: c.Surface},
		{Key: "textPrimary", Value: c.TextPrimary},
		{Key: "textSecondary", Value: c.TextSecondary},
		{Key: "textTertiary", Value: c.TextTertiary},
		{Key: "textInverse", Value: c.TextInverse},
		{Key: "border", Value: c.Border},
		{Key: "borderLight", Value: c.BorderLight},
		{Key: "borderFocus", Value: c.BorderFocus},
		{Key: "success", Value: c.Success},
		{Key: "warning", Value: c.Warning},
		{Key: "error", Value: c.Error},
		{Key: "info", Value: c.Info},
		{Key: "cardBackground", Value: c.CardBackground},
		{Key: "cardBorder", Value: c.CardBorder},
		{Key: "sidebarBackground", Value: c.SidebarBackground},
		{Key: "sidebarText", Value: c.SidebarText},
		{Key: "sidebarActive", Value: c.SidebarActive},
		{Key: "inputBackground", Value: c.InputBackground},
		{Key: "inputBorder", Value: c.InputBorder},
		{Key: "inputFocus", Value: c.InputFocus},
		{Key: "shadow", Value: c.Shadow},
	}
}

// FontSizeSet is the type scale for one font size tier.
type FontSizeSet struct {
	Base string
	SM   string
	LG   string
	XL   string
	XL2  string
	XL3  string
	XL4  string
}

// Tokens lists every size in a stable order.
func (f FontSizeSet) Tokens() []Token {
	return []Token{
		{Key: "base", Value: f.Base},
		{Key: "sm", Value: f.SM},
		{Key: "lg", Value: f.LG},
		{Key: "xl", Value: f.XL},
		{Key: "2xl", Value: f.XL2},
		{Key: "3xl", Value: f.XL3},
		{Key: "4xl", Value: f.XL4},
	}
}

const (
	colorVariablePrefix    = "--color-"
	fontSizeVariablePrefix = "--font-size-"
)

// ColorVariable returns the custom property name for a color key,
// e.g. textPrimary -> --color-text-primary.
func ColorVariable(key string) string {
	return colorVariablePrefix + KebabCase(key)
}

// FontSizeVariable returns the custom property name for a size key,
// e.g. 2xl -> --font-size-2xl.
func FontSizeVariable(key string) string {
	return fontSizeVariablePrefix + KebabCase(key)
}

// KebabCase converts camelCase keys to dash-separated lower case.
func KebabCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
