package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/ui/theme"
)

// MultiChoice is a single-question option picker. It never reveals the
// correct answer.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   int // quiz.NoAnswer until picked
}

// NewMultiChoice creates a picker with chosen preselected.
func NewMultiChoice(question string, options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return MultiChoice{
		Question: question,
		Options:  options,
		Cursor:   cursor,
		Chosen:   chosen,
	}
}

// Update handles arrow navigation, letter or digit picks, and Enter/Space.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter", "space", " ":
		m.Chosen = m.Cursor
		return m, nil
	}

	if idx, ok := optionKey(key); ok && idx < len(m.Options) {
		m.Cursor = idx
		m.Chosen = idx
	}
	return m, nil
}

// optionKey maps a-d, A-D and 1-4 to an option index.
func optionKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	}
	return 0, false
}

// Answered reports whether an option has been picked.
func (m MultiChoice) Answered() bool {
	return m.Chosen != quiz.NoAnswer
}

// View renders the question and its options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "○"
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", cursor, mark, quiz.OptionLetter(i), opt)

		switch {
		case i == m.Chosen:
			b.WriteString(theme.Correct.Render(line))
		case i == m.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
