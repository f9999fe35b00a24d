package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func themeChoices() []Choice {
	return []Choice{
		{Label: "Auto"},
		{Label: "Light"},
		{Label: "Dark", Checked: true},
		{Label: "Black"},
	}
}

func TestModel_CursorStartsOnChecked(t *testing.T) {
	m := New("Select theme", themeChoices())
	assert.Equal(t, 2, m.Cursor())
	assert.False(t, m.Done())
}

func TestModel_EnterChoosesHighlighted(t *testing.T) {
	m := New("Select theme", themeChoices())
	m = send(t, m,
		tea.WindowSizeMsg{Width: 80, Height: 24},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	idx, ok := m.Chosen()
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.True(t, m.Done())
	assert.Empty(t, m.View())
}

func TestModel_VimKeys(t *testing.T) {
	m := New("Select theme", themeChoices())
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24}, runes("k"), runes("k"))
	assert.Equal(t, 0, m.Cursor())

	m = send(t, m, runes("G"))
	assert.Equal(t, 3, m.Cursor())

	m = send(t, m, runes("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_Dismiss(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("q"), {Type: tea.KeyCtrlC}} {
		m := send(t, New("Select theme", themeChoices()), msg)

		_, ok := m.Chosen()
		assert.False(t, ok, msg.String())
		assert.True(t, m.Done())
	}
}

func TestModel_EnterReturnsQuit(t *testing.T) {
	m := New("Select theme", themeChoices())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestModel_View(t *testing.T) {
	m := New("Select theme", themeChoices())
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.Contains(t, view, "Select theme")
	assert.Contains(t, view, "● Dark")
	assert.Contains(t, view, "○ Light")
	assert.Contains(t, view, "select")

	m = send(t, m, runes("?"))
	assert.Contains(t, m.View(), "cancel")
}

func TestBuildKeybindBar_FitsWidth(t *testing.T) {
	m := New("t", themeChoices())

	full := m.buildKeybindBar(0)
	assert.Contains(t, full, "help")

	narrow := m.buildKeybindBar(14)
	assert.Contains(t, narrow, "select")
	assert.NotContains(t, narrow, "help")
	assert.LessOrEqual(t, len(stripStyles(narrow)), 14)
}

func stripStyles(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestChoose_NoChoices(t *testing.T) {
	_, ok, err := Choose(t.Context(), "empty", nil)
	require.ErrorIs(t, err, ErrNoChoices)
	assert.False(t, ok)
}
