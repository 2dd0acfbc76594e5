// Package tui implements the interactive theme picker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/palette"
	"github.com/uamas/themekit/internal/theme"
)

const (
	subscriberID = "tui"
	minWidth     = 50
	minHeight    = 18
)

// Config configures the picker.
type Config struct {
	Store *theme.Store
	// Sync follows changes made by other processes while the picker runs.
	Sync bool
}

// RunWithConfig launches the picker and blocks until it exits.
func RunWithConfig(cfg Config) error {
	if cfg.Store == nil {
		return errors.New("theme store is required")
	}

	program := tea.NewProgram(newModel(cfg.Store), tea.WithAltScreen())
	if err := cfg.Store.Subscribe(subscriberID, &themeSubscriber{program: program}); err != nil {
		return err
	}
	defer func() { _ = cfg.Store.Unsubscribe(subscriberID) }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Sync {
		go func() {
			if err := cfg.Store.Sync(ctx); err != nil && !errors.Is(err, theme.ErrSyncUnsupported) {
				program.Send(syncErrorMsg{err: err})
			}
		}()
	}

	_, err := program.Run()
	return err
}

type row int

const (
	rowMode row = iota
	rowScheme
	rowFontSize
	rowCount
)

type model struct {
	store  *theme.Store
	cfg    models.ThemeConfig
	styles palette.Styles
	sizes  palette.FontSizeSet
	cursor row
	width  int
	height int
	status string
}

func newModel(store *theme.Store) model {
	m := model{store: store}
	return m.withConfig(store.Config())
}

func (m model) withConfig(cfg models.ThemeConfig) model {
	m.cfg = cfg
	m.styles = palette.BuildStyles(palette.ThemeColors(cfg.Mode, cfg.ColorScheme))
	m.sizes = palette.FontSizes(cfg.FontSize)
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ThemeChangeMsg:
		m = m.withConfig(msg.Current)
		m.status = fmt.Sprintf("%s at %s", msg.Source, msg.Timestamp.Local().Format("15:04:05"))
	case syncErrorMsg:
		m.status = "sync stopped: " + msg.err.Error()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor + rowCount - 1) % rowCount
	case "down", "j":
		m.cursor = (m.cursor + 1) % rowCount
	case "left", "h":
		return m, m.step(-1)
	case "right", "l", "enter", " ":
		return m, m.step(1)
	case "t":
		return m, m.mutate(func(s *theme.Store) { s.ToggleMode() })
	case "r":
		return m, m.mutate(func(s *theme.Store) { s.Reset() })
	}
	return m, nil
}

// step moves the value on the focused row by delta, wrapping around.
func (m model) step(delta int) tea.Cmd {
	switch m.cursor {
	case rowMode:
		return m.mutate(func(s *theme.Store) { s.ToggleMode() })
	case rowScheme:
		next := cycle(models.AllColorSchemes, m.cfg.ColorScheme, delta)
		return m.mutate(func(s *theme.Store) { _, _ = s.UpdateColorScheme(next) })
	case rowFontSize:
		next := cycle(models.AllFontSizes, m.cfg.FontSize, delta)
		return m.mutate(func(s *theme.Store) { _, _ = s.UpdateFontSize(next) })
	}
	return nil
}

// mutate runs a store operation off the event loop; the resulting change
// arrives back through the subscriber as a ThemeChangeMsg.
func (m model) mutate(fn func(*theme.Store)) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		fn(store)
		return nil
	}
}

func cycle[T comparable](values []T, current T, delta int) T {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		return joinLines([]string{
			m.styles.Warning.Render(fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)),
			m.styles.Muted.Render(fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)),
		}) + "\n"
	}

	lines := []string{
		m.styles.Title.Render("Theme settings"),
		"",
		m.optionLine(rowMode, "Mode", names(models.AllThemeModes), string(m.cfg.Mode)),
		m.optionLine(rowScheme, "Color scheme", names(models.AllColorSchemes), string(m.cfg.ColorScheme)),
		m.optionLine(rowFontSize, "Font size", names(models.AllFontSizes), string(m.cfg.FontSize)),
		"",
		m.styles.Title.Render("Palette"),
	}
	lines = append(lines, m.swatchLines()...)
	lines = append(lines, "", m.styles.Muted.Render("Type scale: "+m.scaleLine()))

	if m.status != "" {
		lines = append(lines, "", m.styles.Info.Render(m.status))
	}
	lines = append(lines, "", m.styles.Muted.Render("Shortcuts: ↑/↓ select | ←/→ change | t toggle mode | r reset | q quit"))

	return joinLines(lines) + "\n"
}

func (m model) optionLine(r row, label string, options []string, current string) string {
	marker := "  "
	labelStyle := m.styles.Text
	if m.cursor == r {
		marker = m.styles.Focus.Render("> ")
		labelStyle = m.styles.Focus
	}

	parts := make([]string, 0, len(options))
	for _, option := range options {
		if option == current {
			parts = append(parts, m.styles.Active.Render(option))
		} else {
			parts = append(parts, m.styles.Muted.Render(option))
		}
	}
	return fmt.Sprintf("%s%s %s", marker, labelStyle.Render(fmt.Sprintf("%-13s", label)), strings.Join(parts, " "))
}

func (m model) swatchLines() []string {
	colors := m.styles.Colors
	entries := []palette.Token{
		{Key: "primary", Value: colors.Primary},
		{Key: "secondary", Value: colors.Secondary},
		{Key: "accent", Value: colors.Accent},
		{Key: "background", Value: colors.Background},
		{Key: "textPrimary", Value: colors.TextPrimary},
		{Key: "success", Value: colors.Success},
		{Key: "warning", Value: colors.Warning},
		{Key: "error", Value: colors.Error},
		{Key: "info", Value: colors.Info},
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("  %s %-28s %s", palette.Swatch(entry.Value), palette.ColorVariable(entry.Key), entry.Value))
	}
	return lines
}

func (m model) scaleLine() string {
	tokens := m.sizes.Tokens()
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		parts = append(parts, token.Key+"="+token.Value)
	}
	return strings.Join(parts, " ")
}

func names[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

type syncErrorMsg struct {
	err error
}

// ThemeChangeMsg wraps a theme.Change for the TUI.
type ThemeChangeMsg struct {
	Previous  models.ThemeConfig
	Current   models.ThemeConfig
	Source    theme.ChangeSource
	Timestamp time.Time
}
