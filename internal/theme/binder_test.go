package theme

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/palette"
)

func TestApplyWritesEveryToken(t *testing.T) {
	doc := NewDocument()
	binder := NewBinder(doc, zerolog.Nop())

	cfg := models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeBlue, FontSize: models.FontSizeLarge}
	binder.Apply(cfg)

	state := doc.Snapshot()
	colors, sizes := palette.ForConfig(cfg)
	require.Len(t, state.Tokens, len(colors.Tokens())+len(sizes.Tokens()))

	require.Equal(t, colors.TextPrimary, state.Tokens["--color-text-primary"])
	require.Equal(t, colors.SidebarBackground, state.Tokens["--color-sidebar-background"])
	require.Equal(t, "30px", state.Tokens["--font-size-2xl"])
	require.Equal(t, []string{DarkClass}, state.Classes)
	require.Equal(t, "#000000", state.Background)
	require.Equal(t, "18px", state.FontSize)
}

func TestApplyIsIdempotent(t *testing.T) {
	for _, cfg := range allConfigs() {
		once := NewDocument()
		NewBinder(once, zerolog.Nop()).Apply(cfg)

		twice := NewDocument()
		binder := NewBinder(twice, zerolog.Nop())
		binder.Apply(cfg)
		binder.Apply(cfg)

		require.Equal(t, once.Snapshot(), twice.Snapshot(), cfg.String())
		require.Equal(t, once.CSS(), twice.CSS(), cfg.String())
	}
}

func TestApplyOverwritesPreviousTheme(t *testing.T) {
	doc := NewDocument()
	binder := NewBinder(doc, zerolog.Nop())

	binder.Apply(models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeRose, FontSize: models.FontSizeSmall})
	binder.Apply(models.DefaultThemeConfig())

	fresh := NewDocument()
	NewBinder(fresh, zerolog.Nop()).Apply(models.DefaultThemeConfig())
	require.Equal(t, fresh.Snapshot(), doc.Snapshot())
}

func TestApplyWithoutSurfaceIsSafe(t *testing.T) {
	require.NotPanics(t, func() {
		NewBinder(nil, zerolog.Nop()).Apply(models.DefaultThemeConfig())
	})
	require.NotPanics(t, func() {
		var binder *Binder
		binder.Apply(models.DefaultThemeConfig())
	})
	require.NotPanics(t, func() {
		NewBinder(NoopSink{}, zerolog.Nop()).Apply(models.DefaultThemeConfig())
	})
	require.NotPanics(t, func() {
		NewBinder((*Document)(nil), zerolog.Nop()).Apply(models.DefaultThemeConfig())
	})
	require.NotPanics(t, func() {
		NewBinder((*RecordingSink)(nil), zerolog.Nop()).Apply(models.DefaultThemeConfig())
	})
}

func TestApplyCallOrder(t *testing.T) {
	rec := &RecordingSink{}
	NewBinder(rec, zerolog.Nop()).Apply(models.DefaultThemeConfig())

	calls := rec.Calls()
	require.Len(t, calls, 32+7+3)

	tail := calls[len(calls)-3:]
	require.Equal(t, SinkCall{Method: "SetModeMarker", Value: "light"}, tail[0])
	require.Equal(t, SinkCall{Method: "SetBackgroundColor", Value: "#FFFFFF"}, tail[1])
	require.Equal(t, SinkCall{Method: "SetBaseFontSize", Value: "16px"}, tail[2])

	for _, call := range calls[:len(calls)-3] {
		require.Equal(t, "SetToken", call.Method)
		require.True(t, strings.HasPrefix(call.Name, "--color-") || strings.HasPrefix(call.Name, "--font-size-"), call.Name)
	}

	rec.Reset()
	require.Empty(t, rec.Calls())
}

func TestMultiSinkFansOut(t *testing.T) {
	first, second := &RecordingSink{}, &RecordingSink{}
	NewBinder(MultiSink{first, second}, zerolog.Nop()).Apply(models.DefaultThemeConfig())
	require.Equal(t, first.Calls(), second.Calls())
	require.NotEmpty(t, first.Calls())
}
