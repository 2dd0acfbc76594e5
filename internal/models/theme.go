// Package models defines the theme configuration types shared across themekit.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Theme value errors.
var (
	ErrInvalidThemeMode   = errors.New("invalid theme mode")
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	ErrInvalidFontSize    = errors.New("invalid font size")
)

// ThemeMode selects the light or dark palette sub-table.
type ThemeMode string

const (
	ThemeModeLight ThemeMode = "light"
	ThemeModeDark  ThemeMode = "dark"
)

// AllThemeModes lists every mode in display order.
var AllThemeModes = []ThemeMode{ThemeModeLight, ThemeModeDark}

// Valid reports whether m is a known mode.
func (m ThemeMode) Valid() bool {
	return m == ThemeModeLight || m == ThemeModeDark
}

// Toggle flips light and dark.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeModeDark {
		return ThemeModeLight
	}
	return ThemeModeDark
}

// ColorScheme names a hue family applied across all color tokens.
type ColorScheme string

const (
	ColorSchemeEmerald ColorScheme = "emerald"
	ColorSchemeBlue    ColorScheme = "blue"
	ColorSchemePurple  ColorScheme = "purple"
	ColorSchemeOrange  ColorScheme = "orange"
	ColorSchemeRose    ColorScheme = "rose"
)

// AllColorSchemes lists every color scheme in display order.
var AllColorSchemes = []ColorScheme{
	ColorSchemeEmerald,
	ColorSchemeBlue,
	ColorSchemePurple,
	ColorSchemeOrange,
	ColorSchemeRose,
}

// Valid reports whether s is a known color scheme.
func (s ColorScheme) Valid() bool {
	switch s {
	case ColorSchemeEmerald, ColorSchemeBlue, ColorSchemePurple, ColorSchemeOrange, ColorSchemeRose:
		return true
	default:
		return false
	}
}

// FontSize selects a type-scale tier.
type FontSize string

const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

// AllFontSizes lists every font size tier from smallest to largest.
var AllFontSizes = []FontSize{FontSizeSmall, FontSizeMedium, FontSizeLarge}

// Valid reports whether f is a known font size.
func (f FontSize) Valid() bool {
	return f == FontSizeSmall || f == FontSizeMedium || f == FontSizeLarge
}

// ThemeConfig is the persisted theme selection.
type ThemeConfig struct {
	Mode        ThemeMode   `json:"mode" yaml:"mode"`
	ColorScheme ColorScheme `json:"colorScheme" yaml:"colorScheme"`
	FontSize    FontSize    `json:"fontSize" yaml:"fontSize"`
}

// DefaultThemeConfig returns the configuration used when nothing valid is stored.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Mode:        ThemeModeLight,
		ColorScheme: ColorSchemeEmerald,
		FontSize:    FontSizeMedium,
	}
}

// Validate checks that every field holds a known value.
func (c ThemeConfig) Validate() error {
	validation := &ValidationErrors{}
	if !c.Mode.Valid() {
		validation.AddMessage("mode", fmt.Sprintf("unknown mode %q", c.Mode))
	}
	if !c.ColorScheme.Valid() {
		validation.AddMessage("colorScheme", fmt.Sprintf("unknown color scheme %q", c.ColorScheme))
	}
	if !c.FontSize.Valid() {
		validation.AddMessage("fontSize", fmt.Sprintf("unknown font size %q", c.FontSize))
	}
	return validation.Err()
}

func (c ThemeConfig) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Mode, c.ColorScheme, c.FontSize)
}

// ParseThemeMode parses a mode name, ignoring case and surrounding space.
func ParseThemeMode(value string) (ThemeMode, error) {
	mode := ThemeMode(normalize(value))
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidThemeMode, value)
	}
	return mode, nil
}

// ParseColorScheme parses a color scheme name.
func ParseColorScheme(value string) (ColorScheme, error) {
	scheme := ColorScheme(normalize(value))
	if !scheme.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColorScheme, value)
	}
	return scheme, nil
}

// ParseFontSize parses a font size tier name.
func ParseFontSize(value string) (FontSize, error) {
	size := FontSize(normalize(value))
	if !size.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFontSize, value)
	}
	return size, nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
