package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/wxui/internal/theme"
)

// ThemePicker shows the theme selection dialog in the terminal.
type ThemePicker struct {
	ProgramOptions []tea.ProgramOption
}

// Pick implements theme.Picker.
func (p ThemePicker) Pick(ctx context.Context, title string, options []theme.Option) (theme.Option, bool, error) {
	choices := make([]Choice, len(options))
	for i, o := range options {
		choices[i] = Choice{Label: o.Name, Checked: o.Checked}
	}

	idx, ok, err := Choose(ctx, title, choices, p.ProgramOptions...)
	if err != nil || !ok {
		return theme.Option{}, false, err
	}
	return options[idx], true, nil
}
