package theme

import (
	"github.com/rs/zerolog"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/palette"
)

// Binder projects a theme configuration onto a StyleSink.
type Binder struct {
	sink   StyleSink
	logger zerolog.Logger
}

// NewBinder creates a binder. Pass NoopSink, or nil, when there is no live
// surface. A nil pointer of a concrete sink type is only safe for sinks in
// this package (Document, RecordingSink).
func NewBinder(sink StyleSink, logger zerolog.Logger) *Binder {
	if sink == nil {
		sink = NoopSink{}
	}
	return &Binder{sink: sink, logger: logger}
}

// Apply writes every color and font size token, then the mode marker and the
// inline root background and font size. Applying the same configuration
// twice leaves the surface unchanged.
func (b *Binder) Apply(cfg models.ThemeConfig) {
	if b == nil || b.sink == nil {
		return
	}

	colors, sizes := palette.ForConfig(cfg)
	for _, token := range colors.Tokens() {
		b.sink.SetToken(palette.ColorVariable(token.Key), token.Value)
	}
	for _, token := range sizes.Tokens() {
		b.sink.SetToken(palette.FontSizeVariable(token.Key), token.Value)
	}

	b.sink.SetModeMarker(cfg.Mode)
	// Set directly so nothing paints before token-aware styles load.
	b.sink.SetBackgroundColor(colors.Background)
	b.sink.SetBaseFontSize(sizes.Base)

	b.logger.Debug().
		Str("mode", string(cfg.Mode)).
		Str("color_scheme", string(cfg.ColorScheme)).
		Str("font_size", string(cfg.FontSize)).
		Msg("theme applied")
}
