// Package palette is the static registry of theme tokens.
//
// Every (mode, color scheme) pair resolves to a complete Colors value and
// every font size tier resolves to a complete FontSizeSet. Lookups are pure
// and total: unknown inputs fall back to the default light/emerald/medium
// tables rather than failing.
//
//	colors := palette.ThemeColors(models.ThemeModeDark, models.ColorSchemeBlue)
//	for _, token := range colors.Tokens() {
//		sink.SetToken(palette.ColorVariable(token.Key), token.Value)
//	}
package palette
