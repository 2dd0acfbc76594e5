package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses a #RRGGBB or #RGB color value.
func ParseHex(value string) (colorful.Color, error) {
	c, err := colorful.Hex(value)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", value, err)
	}
	return c, nil
}

// RelativeLuminance returns the WCAG relative luminance of a hex color.
func RelativeLuminance(value string) (float64, error) {
	c, err := ParseHex(value)
	if err != nil {
		return 0, err
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}

// ContrastRatio returns the WCAG contrast ratio between two hex colors,
// ranging from 1 (identical) to 21 (black on white).
func ContrastRatio(fg, bg string) (float64, error) {
	l1, err := RelativeLuminance(fg)
	if err != nil {
		return 0, err
	}
	l2, err := RelativeLuminance(bg)
	if err != nil {
		return 0, err
	}
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05), nil
}
