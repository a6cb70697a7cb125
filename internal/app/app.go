// Package app runs the interactive quiz-taking terminal UI.
package app

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/router"
	"github.com/abhisek/careercoach/internal/screen"
	"github.com/abhisek/careercoach/internal/screens/quiztaker"
	"github.com/abhisek/careercoach/internal/ui/layout"
)

// ErrAborted is returned when the taker quits before submitting.
var ErrAborted = errors.New("quiz aborted")

// Options configures a quiz run.
type Options struct {
	// AskEmail prompts for a results address after review. Used for
	// anonymous takers.
	AskEmail bool
}

// Result is what the taker submitted.
type Result struct {
	Answers quiz.AnswerSet
	Email   string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	quiz   *quiz.Quiz
	result *Result
	width  int
	height int
}

// newAppModel creates an AppModel starting on the first question.
func newAppModel(q *quiz.Quiz, opts Options) AppModel {
	return AppModel{
		router: router.New(quiztaker.New(q, opts.AskEmail)),
		quiz:   q,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.QuizFinishedMsg:
		m.result = &Result{Answers: msg.Answers, Email: msg.Email}
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := fmt.Sprintf("%s · %s", m.quiz.Topic, m.quiz.Difficulty)
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run shows the quiz and blocks until the taker submits or quits.
func Run(q *quiz.Quiz, opts Options) (Result, error) {
	if q == nil || len(q.Questions) == 0 {
		return Result{}, errors.New("quiz has no questions")
	}
	final, err := tea.NewProgram(newAppModel(q, opts)).Run()
	if err != nil {
		return Result{}, fmt.Errorf("running quiz UI: %w", err)
	}
	m, ok := final.(AppModel)
	if !ok || m.result == nil {
		return Result{}, ErrAborted
	}
	return *m.result, nil
}
