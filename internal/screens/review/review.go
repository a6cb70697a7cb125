// Package review lists the taker's answers and confirms submission.
package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/router"
	"github.com/abhisek/careercoach/internal/screen"
	"github.com/abhisek/careercoach/internal/screens/email"
	"github.com/abhisek/careercoach/internal/ui/components"
	"github.com/abhisek/careercoach/internal/ui/layout"
	"github.com/abhisek/careercoach/internal/ui/theme"
)

// ReviewScreen shows every answer before submission. Submitting is only
// possible once all questions are answered, and only once.
type ReviewScreen struct {
	quiz      *quiz.Quiz
	answers   quiz.AnswerSet
	askEmail  bool
	submitted bool
	notice    string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen for a snapshot of answers.
func New(q *quiz.Quiz, answers quiz.AnswerSet, askEmail bool) *ReviewScreen {
	return &ReviewScreen{quiz: q, answers: answers, askEmail: askEmail}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review Answers"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back to questions"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || kmsg.String() != "enter" || s.submitted {
		return s, nil
	}

	if missing := s.answers.Unanswered(); len(missing) > 0 {
		nums := make([]string, len(missing))
		for i, idx := range missing {
			nums[i] = fmt.Sprint(idx + 1)
		}
		s.notice = "Please answer all questions before submitting. Unanswered: " + strings.Join(nums, ", ")
		return s, nil
	}

	s.submitted = true
	answers := s.answers.Selections()
	if s.askEmail {
		next := email.New(answers)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, func() tea.Msg { return screen.QuizFinishedMsg{Answers: answers} }
}

func (s *ReviewScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("%s quiz (%s)", s.quiz.Topic, s.quiz.Difficulty)))
	b.WriteString("\n\n")

	textWidth := max(width-16, 10)
	for i, q := range s.quiz.Questions {
		text := q.Text
		if len([]rune(text)) > textWidth {
			text = string([]rune(text)[:textWidth-1]) + "…"
		}
		var answer string
		if s.answers[i] == quiz.NoAnswer {
			answer = theme.Incorrect.Render(" — ")
		} else {
			answer = theme.Selected.Render(" " + quiz.OptionLetter(s.answers[i]) + " ")
		}
		fmt.Fprintf(&b, "  %2d. %s %s\n", i+1, answer, theme.Body.Render(text))
	}
	b.WriteString("\n")

	complete := s.answers.Complete()
	b.WriteString("  ")
	b.WriteString(components.NewButton("Submit answers", complete && !s.submitted).View())
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString("\n  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
		b.WriteString("\n")
	}

	return b.String()
}
