package appearance

import (
	"context"

	"github.com/charmbracelet/lipgloss"
)

// Terminal reports the terminal background as the appearance.
// Terminals do not announce background changes, so Watch never fires.
type Terminal struct {
	detect func() bool
}

// NewTerminal creates a source backed by lipgloss background detection.
func NewTerminal() *Terminal {
	return &Terminal{detect: lipgloss.HasDarkBackground}
}

// Name implements Source.
func (t *Terminal) Name() string { return "terminal" }

// Current implements Source.
func (t *Terminal) Current(context.Context) (Appearance, error) {
	if t.detect() {
		return Dark, nil
	}
	return Light, nil
}

// Watch implements Source.
func (t *Terminal) Watch(context.Context, func(Appearance)) error {
	return nil
}
