// Package cli provides status formatting helpers.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/theme"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

func colorEnabled() bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return stdoutIsTTY()
}

func colorize(text, color string) string {
	if color == "" || !colorEnabled() {
		return text
	}
	return color + text + colorReset
}

func formatEventType(eventType models.EventType) string {
	label, color := labelForEventType(eventType)
	return colorize(formatStatusLabel(label, string(eventType)), color)
}

func labelForEventType(eventType models.EventType) (string, string) {
	switch eventType {
	case models.EventTypeThemeChanged:
		return "SET", colorGreen
	case models.EventTypeThemeReset:
		return "RESET", colorYellow
	case models.EventTypeThemeSynced:
		return "SYNC", colorCyan
	case models.EventTypeError:
		return "ERR", colorRed
	default:
		return "INFO", colorMagenta
	}
}

func formatSource(source theme.ChangeSource) string {
	switch source {
	case theme.SourceExternal:
		return colorize(string(source), colorCyan)
	case theme.SourceReset:
		return colorize(string(source), colorYellow)
	default:
		return colorize(string(source), colorBlue)
	}
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized != "" {
		normalized = strings.ReplaceAll(normalized, "_", " ")
	}
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}
