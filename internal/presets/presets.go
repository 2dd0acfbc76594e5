// Package presets loads named theme configurations from YAML.
package presets

import (
	"errors"
	"fmt"

	"github.com/uamas/themekit/internal/models"
)

var (
	// ErrPresetNameRequired is returned when a preset has no name.
	ErrPresetNameRequired = errors.New("preset name is required")
	// ErrPresetNotFound is returned when no preset has the requested name.
	ErrPresetNotFound = errors.New("preset not found")
)

// PresetValidationError describes an invalid preset field.
type PresetValidationError struct {
	Preset string
	Field  string
	Err    error
}

func (e *PresetValidationError) Error() string {
	return fmt.Sprintf("preset %s: %s: %v", e.Preset, e.Field, e.Err)
}

func (e *PresetValidationError) Unwrap() error {
	return e.Err
}

// Preset is a named theme configuration.
type Preset struct {
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description,omitempty"`
	Mode        models.ThemeMode   `yaml:"mode" json:"mode"`
	ColorScheme models.ColorScheme `yaml:"colorScheme" json:"colorScheme"`
	FontSize    models.FontSize    `yaml:"fontSize" json:"fontSize"`
	Source      string             `yaml:"-" json:"source"` // file path or "builtin"
}

// Config returns the theme configuration the preset applies.
func (p *Preset) Config() models.ThemeConfig {
	return models.ThemeConfig{Mode: p.Mode, ColorScheme: p.ColorScheme, FontSize: p.FontSize}
}

// Validate checks that the preset names a complete, valid theme.
func (p *Preset) Validate() error {
	if p.Name == "" {
		return ErrPresetNameRequired
	}
	if !p.Mode.Valid() {
		return &PresetValidationError{Preset: p.Name, Field: "mode", Err: fmt.Errorf("%w: %q", models.ErrInvalidThemeMode, p.Mode)}
	}
	if !p.ColorScheme.Valid() {
		return &PresetValidationError{Preset: p.Name, Field: "colorScheme", Err: fmt.Errorf("%w: %q", models.ErrInvalidColorScheme, p.ColorScheme)}
	}
	if !p.FontSize.Valid() {
		return &PresetValidationError{Preset: p.Name, Field: "fontSize", Err: fmt.Errorf("%w: %q", models.ErrInvalidFontSize, p.FontSize)}
	}
	return nil
}
