// Package email asks an anonymous taker where to send the results.
package email

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careercoach/internal/mail"
	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/screen"
	"github.com/abhisek/careercoach/internal/ui/components"
	"github.com/abhisek/careercoach/internal/ui/layout"
	"github.com/abhisek/careercoach/internal/ui/theme"
)

// EmailScreen collects an optional address for the results email.
type EmailScreen struct {
	answers quiz.AnswerSet
	input   components.TextInput
	done    bool
}

var _ screen.Screen = (*EmailScreen)(nil)
var _ screen.KeyHintProvider = (*EmailScreen)(nil)

// New creates an EmailScreen for a completed answer set.
func New(answers quiz.AnswerSet) *EmailScreen {
	return &EmailScreen{
		answers: answers,
		input:   components.NewTextInput("you@example.com", 254),
	}
}

func (s *EmailScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *EmailScreen) Title() string {
	return "Email Results"
}

func (s *EmailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit (leave empty to skip)"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *EmailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		addr := strings.TrimSpace(s.input.Value())
		if addr != "" && !mail.LooksValid(addr) {
			s.input.SetError("that does not look like an email address")
			return s, nil
		}
		s.done = true
		answers := s.answers
		return s, func() tea.Msg { return screen.QuizFinishedMsg{Answers: answers, Email: addr} }
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *EmailScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Title.Render("Want your AI performance analysis by email?")))
	b.WriteString("\n\n")
	b.WriteString("  ")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render("Leave empty and press Enter to see your results here only."))
	return b.String()
}
