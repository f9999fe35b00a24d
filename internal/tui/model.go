// Package tui provides the BubbleTea-based single choice picker used by the
// CLI for theme and provider selection.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Choice is one entry of the picker.
type Choice struct {
	Label       string
	Description string
	Checked     bool // Marks the current value
}

// Model is the picker model.
type Model struct {
	title   string
	choices []Choice

	list list.Model
	help help.Model
	keys KeyMap

	width    int
	ready    bool
	showHelp bool

	chosen int
	done   bool
}

// choiceItem wraps a choice for the list component.
type choiceItem struct {
	choice Choice
	index  int
}

func (i choiceItem) Title() string       { return i.choice.Label }
func (i choiceItem) Description() string { return i.choice.Description }
func (i choiceItem) FilterValue() string { return i.choice.Label }

// choiceDelegate renders a radio marker in front of each choice.
type choiceDelegate struct {
	list.DefaultDelegate
}

func newChoiceDelegate() choiceDelegate {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	return choiceDelegate{DefaultDelegate: d}
}

// Render renders a choice with its checked state.
func (d choiceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(choiceItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	style := d.DefaultDelegate.Styles.NormalTitle
	if index == m.Index() {
		style = d.DefaultDelegate.Styles.SelectedTitle
	}

	marker := "○"
	if ci.choice.Checked {
		marker = "●"
	}
	line := marker + " " + ci.choice.Label
	if ci.choice.Description != "" {
		line += lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("  " + ci.choice.Description)
	}
	fmt.Fprint(w, style.Render(line))
}

// New creates a picker with the cursor on the checked choice.
func New(title string, choices []Choice) Model {
	items := make([]list.Item, len(choices))
	cursor := 0
	for i, c := range choices {
		items[i] = choiceItem{choice: c, index: i}
		if c.Checked {
			cursor = i
		}
	}

	l := list.New(items, newChoiceDelegate(), 0, len(choices)+6)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Select(cursor)

	return Model{
		title:   title,
		choices: choices,
		list:    l,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		chosen:  -1,
	}
}

// Init initializes the picker.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true
		m.list.SetSize(msg.Width, min(msg.Height-2, len(m.choices)+6))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.list.SelectedItem().(choiceItem); ok {
			m.chosen = item.index
		}
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Home):
		m.list.Select(0)
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.list.Select(len(m.choices) - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Chosen returns the index of the picked choice. ok is false when the
// picker was dismissed.
func (m Model) Chosen() (index int, ok bool) {
	return m.chosen, m.chosen >= 0
}

// Done reports whether the picker has finished.
func (m Model) Done() bool {
	return m.done
}

// Cursor returns the index of the highlighted choice.
func (m Model) Cursor() int {
	return m.list.Index()
}

// View renders the picker.
func (m Model) View() string {
	if m.done {
		return ""
	}
	s := m.list.View()
	if m.showHelp {
		return s + "\n" + m.help.FullHelpView(m.keys.FullHelp())
	}
	return s + "\n" + m.buildKeybindBar(m.width)
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
func (m Model) buildKeybindBar(width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	binds := []keybind{
		{"enter", "select", 1},
		{"esc", "cancel", 2},
		{"↑/↓", "move", 3},
		{"?", "help", 4},
	}

	const separator = "  "
	result := ""
	plain := 0
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		itemLen := lipgloss.Width(b.key + " " + b.desc)
		testLen := plain + itemLen
		if result != "" {
			testLen += len(separator)
		}
		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
		plain = testLen
	}

	return style.Render(result)
}

// ErrNoChoices is returned when the picker is run without choices.
var ErrNoChoices = errors.New("nothing to choose from")

// Choose runs the picker and returns the picked index. ok is false when the
// user dismissed it.
func Choose(ctx context.Context, title string, choices []Choice, opts ...tea.ProgramOption) (int, bool, error) {
	if len(choices) == 0 {
		return -1, false, ErrNoChoices
	}

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(title, choices), opts...)

	final, err := p.Run()
	if err != nil {
		return -1, false, fmt.Errorf("picker failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return -1, false, nil
	}
	idx, ok := m.Chosen()
	return idx, ok, nil
}
