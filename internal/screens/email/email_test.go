package email

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/screen"
)

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func typeText(s *EmailScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestEmailScreen_EmptySkips(t *testing.T) {
	s := New(quiz.AnswerSet{0, 1})
	_, cmd := s.Update(enter)
	if cmd == nil {
		t.Fatal("expected finish command")
	}
	msg, ok := cmd().(screen.QuizFinishedMsg)
	if !ok {
		t.Fatalf("expected QuizFinishedMsg, got %T", cmd())
	}
	if msg.Email != "" {
		t.Fatalf("Email = %q, want empty", msg.Email)
	}
}

func TestEmailScreen_InvalidShowsError(t *testing.T) {
	s := New(quiz.AnswerSet{0, 1})
	typeText(s, "not-an-email")

	_, cmd := s.Update(enter)
	if cmd != nil {
		t.Fatal("invalid address must not finish")
	}
	if s.input.Err() == "" {
		t.Fatal("expected validation error")
	}
}

func TestEmailScreen_ValidFinishes(t *testing.T) {
	s := New(quiz.AnswerSet{2, 3})
	typeText(s, "ada@example.com")

	_, cmd := s.Update(enter)
	if cmd == nil {
		t.Fatal("expected finish command")
	}
	msg := cmd().(screen.QuizFinishedMsg)
	if msg.Email != "ada@example.com" {
		t.Fatalf("Email = %q", msg.Email)
	}
	if msg.Answers[1] != 3 {
		t.Fatalf("Answers = %v", msg.Answers)
	}
}
