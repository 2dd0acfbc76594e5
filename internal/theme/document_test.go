package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uamas/themekit/internal/models"
)

func TestDocumentModeMarker(t *testing.T) {
	doc := NewDocument()

	doc.SetModeMarker(models.ThemeModeDark)
	require.True(t, doc.HasClass(DarkClass))

	doc.SetModeMarker(models.ThemeModeLight)
	require.False(t, doc.HasClass(DarkClass))
}

func TestDocumentCSS(t *testing.T) {
	doc := NewDocument()
	doc.SetToken("--color-primary", "#059669")
	doc.SetToken("--font-size-base", "16px")
	doc.SetToken("--color-primary", "#2563EB")
	doc.SetModeMarker(models.ThemeModeDark)
	doc.SetBackgroundColor("#000000")
	doc.SetBaseFontSize("16px")

	want := strings.Join([]string{
		"/* root class: dark */",
		":root {",
		"  --color-primary: #2563EB;",
		"  --font-size-base: 16px;",
		"}",
		"",
		"html {",
		"  background-color: #000000;",
		"  font-size: 16px;",
		"}",
		"",
	}, "\n")
	require.Equal(t, want, doc.CSS())
}

func TestDocumentSnapshotIsACopy(t *testing.T) {
	doc := NewDocument()
	doc.SetToken("--color-primary", "#059669")

	state := doc.Snapshot()
	state.Tokens["--color-primary"] = "#000000"

	value, ok := doc.Token("--color-primary")
	require.True(t, ok)
	require.Equal(t, "#059669", value)
}
