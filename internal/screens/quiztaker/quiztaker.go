// Package quiztaker is the screen for answering a quiz one question at a time.
package quiztaker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/router"
	"github.com/abhisek/careercoach/internal/screen"
	"github.com/abhisek/careercoach/internal/screens/review"
	"github.com/abhisek/careercoach/internal/ui/components"
	"github.com/abhisek/careercoach/internal/ui/layout"
	"github.com/abhisek/careercoach/internal/ui/theme"
)

// QuizScreen shows one question at a time and collects answers.
type QuizScreen struct {
	quiz     *quiz.Quiz
	answers  quiz.AnswerSet
	current  int
	choice   components.MultiChoice
	askEmail bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. askEmail adds an email prompt after review.
func New(q *quiz.Quiz, askEmail bool) *QuizScreen {
	s := &QuizScreen{
		quiz:     q,
		answers:  q.NewAnswers(),
		askEmail: askEmail,
	}
	s.load(0)
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return fmt.Sprintf("Question %d of %d", s.current+1, len(s.quiz.Questions))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "S", Description: "Review & submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Answers returns a copy of the current selections.
func (s *QuizScreen) Answers() quiz.AnswerSet {
	s.commit()
	return s.answers.Selections()
}

func (s *QuizScreen) load(i int) {
	s.current = i
	q := s.quiz.Questions[i]
	s.choice = components.NewMultiChoice(q.Text, q.Options, s.answers[i])
}

func (s *QuizScreen) commit() {
	s.answers[s.current] = s.choice.Chosen
}

func (s *QuizScreen) move(delta int) {
	next := s.current + delta
	if next < 0 || next >= len(s.quiz.Questions) {
		return
	}
	s.commit()
	s.load(next)
}

func (s *QuizScreen) review() tea.Cmd {
	s.commit()
	next := review.New(s.quiz, s.answers.Selections(), s.askEmail)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "p", "shift+tab":
		s.move(-1)
		return s, nil
	case "right", "n", "tab":
		s.move(1)
		return s, nil
	case "s", "S":
		return s, s.review()
	case "enter":
		s.choice, _ = s.choice.Update(msg)
		s.commit()
		if s.current == len(s.quiz.Questions)-1 {
			return s, s.review()
		}
		s.move(1)
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	s.commit()
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	var b strings.Builder
	inner := max(width-8, 20)

	answered := len(s.answers) - len(s.answers.Unanswered())
	pct := float64(answered) / float64(len(s.answers))
	b.WriteString("  ")
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("Answered %d/%d", answered, len(s.answers)), pct, false, inner).View())
	b.WriteString("\n\n")

	card := theme.Card.Width(inner).Render(s.choice.View(inner - 6))
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(card))
	b.WriteString("\n\n")

	b.WriteString(s.renderDots())
	return b.String()
}

// renderDots shows one marker per question: filled when answered, bracketed
// for the current question.
func (s *QuizScreen) renderDots() string {
	parts := make([]string, len(s.answers))
	for i, a := range s.answers {
		mark := "·"
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if a != quiz.NoAnswer {
			mark = "●"
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		if i == s.current {
			mark = "[" + mark + "]"
			style = style.Bold(true)
		}
		parts[i] = style.Render(mark)
	}
	return "  " + strings.Join(parts, " ")
}
