// Package scoring grades a completed answer set against a quiz.
package scoring

import (
	"errors"
	"fmt"

	"github.com/abhisek/careercoach/internal/quiz"
)

// DefaultPassThreshold is the number of correct answers needed to pass.
// It only changes tone; the stored score is always the raw count.
const DefaultPassThreshold = 6

var (
	// ErrIncompleteAnswers means at least one question has no selection.
	ErrIncompleteAnswers = errors.New("every question must be answered before scoring")

	// ErrAnswerCountMismatch means the answer set is not aligned with the questions.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
)

// Result is the outcome of scoring one attempt.
type Result struct {
	Correct int                 `json:"score"`
	Total   int                 `json:"totalQuestions"`
	Passed  bool                `json:"passed"`
	Answers []quiz.AnswerRecord `json:"answers"`
}

// Percentage returns the score as a rounded whole percentage.
func (r Result) Percentage() int {
	if r.Total <= 0 {
		return 0
	}
	// Integer round-half-up of 100*c/t.
	return (200*r.Correct + r.Total) / (2 * r.Total)
}

// Engine scores attempts.
type Engine struct {
	PassThreshold int
}

// NewEngine returns an Engine. A non-positive threshold uses DefaultPassThreshold.
func NewEngine(threshold int) Engine {
	if threshold <= 0 {
		threshold = DefaultPassThreshold
	}
	return Engine{PassThreshold: threshold}
}

// Passed reports whether correct meets the threshold.
func (e Engine) Passed(correct int) bool {
	return correct >= e.PassThreshold
}

// Score compares answers to the questions' correct options. It neither
// mutates its inputs nor keeps state between calls.
func (e Engine) Score(questions []quiz.Question, answers quiz.AnswerSet) (Result, error) {
	if len(answers) != len(questions) {
		return Result{}, fmt.Errorf("%w: %d answers for %d questions",
			ErrAnswerCountMismatch, len(answers), len(questions))
	}
	if missing := answers.Unanswered(); len(missing) > 0 {
		return Result{}, fmt.Errorf("%w: %d unanswered", ErrIncompleteAnswers, len(missing))
	}
	if err := answers.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{
		Total:   len(questions),
		Answers: make([]quiz.AnswerRecord, len(questions)),
	}
	for i, q := range questions {
		ok := answers[i] == q.CorrectIndex
		if ok {
			res.Correct++
		}
		res.Answers[i] = quiz.AnswerRecord{
			QuestionIndex:  i,
			SelectedAnswer: answers[i],
			CorrectAnswer:  q.CorrectIndex,
			IsCorrect:      ok,
		}
	}
	res.Passed = e.Passed(res.Correct)
	return res, nil
}
