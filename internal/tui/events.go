package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/uamas/themekit/internal/theme"
)

func toThemeChangeMsg(change theme.Change) ThemeChangeMsg {
	return ThemeChangeMsg{
		Previous:  change.Previous,
		Current:   change.Current,
		Source:    change.Source,
		Timestamp: change.Timestamp,
	}
}

// themeSubscriber bridges the theme store to the TUI.
type themeSubscriber struct {
	program *tea.Program
}

// OnThemeChange implements theme.Subscriber.
func (s *themeSubscriber) OnThemeChange(change theme.Change) {
	if s.program != nil {
		s.program.Send(toThemeChangeMsg(change))
	}
}
