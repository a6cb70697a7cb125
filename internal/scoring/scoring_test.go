package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/careercoach/internal/quiz"
)

func twoPlusTwo() []quiz.Question {
	return []quiz.Question{{Text: "What is 2+2?", Options: []string{"3", "4", "5", "6"}, CorrectIndex: 1}}
}

func TestScore_SingleQuestionBoundary(t *testing.T) {
	e := Engine{PassThreshold: 1}

	tests := []struct {
		name       string
		answer     int
		wantScore  int
		wantPassed bool
	}{
		{"correct", 1, 1, true},
		{"incorrect", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Score(twoPlusTwo(), quiz.AnswerSet{tt.answer})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Correct != tt.wantScore || res.Total != 1 {
				t.Errorf("score = %d/%d, want %d/1", res.Correct, res.Total, tt.wantScore)
			}
			if res.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", res.Passed, tt.wantPassed)
			}
			want := quiz.AnswerRecord{QuestionIndex: 0, SelectedAnswer: tt.answer, CorrectAnswer: 1, IsCorrect: tt.wantPassed}
			if res.Answers[0] != want {
				t.Errorf("record = %+v, want %+v", res.Answers[0], want)
			}
		})
	}
}

func TestScore_Rejects(t *testing.T) {
	e := NewEngine(0)
	qs := append(twoPlusTwo(), twoPlusTwo()...)

	tests := []struct {
		name    string
		answers quiz.AnswerSet
		want    error
	}{
		{"unanswered", quiz.AnswerSet{1, quiz.NoAnswer}, ErrIncompleteAnswers},
		{"all unanswered", quiz.NewAnswerSet(2), ErrIncompleteAnswers},
		{"too few", quiz.AnswerSet{1}, ErrAnswerCountMismatch},
		{"too many", quiz.AnswerSet{1, 1, 1}, ErrAnswerCountMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Score(qs, tt.answers)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := e.Score(twoPlusTwo(), quiz.AnswerSet{7}); err == nil {
		t.Error("out-of-range option should be rejected")
	}
}

func TestScore_Idempotent(t *testing.T) {
	e := NewEngine(0)
	qs := make([]quiz.Question, 10)
	answers := make(quiz.AnswerSet, 10)
	for i := range qs {
		qs[i] = quiz.Question{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: i % 4}
		answers[i] = (i * 3) % 4
	}
	before := answers.Selections()

	first, err := e.Score(qs, answers)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Score(qs, answers)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scoring not idempotent:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(before, answers.Selections()) {
		t.Fatal("Score mutated the answer set")
	}
}

func TestScore_Threshold(t *testing.T) {
	qs := make([]quiz.Question, 10)
	for i := range qs {
		qs[i] = quiz.Question{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0}
	}
	answersWithCorrect := func(n int) quiz.AnswerSet {
		a := make(quiz.AnswerSet, len(qs))
		for i := range a {
			if i >= n {
				a[i] = 1
			}
		}
		return a
	}

	e := NewEngine(DefaultPassThreshold)
	for correct := 0; correct <= 10; correct++ {
		res, err := e.Score(qs, answersWithCorrect(correct))
		if err != nil {
			t.Fatal(err)
		}
		if res.Correct != correct {
			t.Fatalf("Correct = %d, want %d", res.Correct, correct)
		}
		if want := correct >= 6; res.Passed != want {
			t.Errorf("%d/10: Passed = %v, want %v", correct, res.Passed, want)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 10, 0},
		{7, 10, 70},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{3, 3, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := Result{Correct: tt.correct, Total: tt.total}.Percentage()
		if got != tt.want {
			t.Errorf("Percentage(%d/%d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestNewEngine_Default(t *testing.T) {
	if got := NewEngine(-3).PassThreshold; got != DefaultPassThreshold {
		t.Errorf("PassThreshold = %d", got)
	}
	if got := NewEngine(4).PassThreshold; got != 4 {
		t.Errorf("PassThreshold = %d", got)
	}
}
