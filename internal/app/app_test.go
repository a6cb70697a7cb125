package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/screen"
)

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		Topic:      "Interviewing",
		Difficulty: quiz.Beginner,
		Questions: []quiz.Question{
			{Text: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
			{Text: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		},
	}
}

func TestAppModel_FinishStoresResultAndQuits(t *testing.T) {
	m := newAppModel(sampleQuiz(), Options{})

	updated, cmd := m.Update(screen.QuizFinishedMsg{Answers: quiz.AnswerSet{0, 1}, Email: "ada@example.com"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}

	am := updated.(AppModel)
	if am.result == nil {
		t.Fatal("result not stored")
	}
	if am.result.Email != "ada@example.com" || len(am.result.Answers) != 2 {
		t.Fatalf("unexpected result %+v", am.result)
	}
}

func TestAppModel_CtrlCLeavesNoResult(t *testing.T) {
	m := newAppModel(sampleQuiz(), Options{})

	updated, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if updated.(AppModel).result != nil {
		t.Fatal("abort must not produce a result")
	}
}

func TestAppModel_ViewShowsTopic(t *testing.T) {
	m := newAppModel(sampleQuiz(), Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	am := updated.(AppModel)
	if am.View().Content == nil {
		t.Fatal("expected rendered content")
	}
	if got := am.router.View(100, 30); !strings.Contains(got, "Q1") {
		t.Fatalf("first question not shown:\n%s", got)
	}
}

func TestRun_RejectsEmptyQuiz(t *testing.T) {
	if _, err := Run(&quiz.Quiz{Topic: "x"}, Options{}); err == nil {
		t.Fatal("expected error for empty quiz")
	}
}
