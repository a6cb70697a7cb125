package quiz

import (
	"fmt"
	"strings"
	"time"
)

// OptionsPerQuestion is the number of choices every finalized question has.
const OptionsPerQuestion = 4

// NoAnswer marks an unanswered question in an AnswerSet.
const NoAnswer = -1

// Question is one multiple-choice question.
type Question struct {
	Text string `json:"question"`

	// Options holds exactly OptionsPerQuestion choices, in display order.
	Options []string `json:"options"`

	// CorrectIndex is the zero-based index of the right option.
	CorrectIndex int `json:"correctAnswer"`
}

// CorrectOption returns the text of the right option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// OptionLetter maps a zero-based option index to its display letter.
func OptionLetter(i int) string {
	if i < 0 || i >= OptionsPerQuestion {
		return "?"
	}
	return string(rune('A' + i))
}

// Difficulty is the level a quiz was generated for.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists the valid levels in ascending order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// ParseDifficulty accepts a level name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Beginner, Intermediate, Advanced:
		return d, nil
	}
	return "", fmt.Errorf("invalid difficulty %q: want beginner, intermediate or advanced", s)
}

// Quiz is a parsed, immutable set of questions on one topic.
type Quiz struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Questions  []Question `json:"questions"`
}

// NewAnswers returns an empty AnswerSet sized for the quiz.
func (q *Quiz) NewAnswers() AnswerSet {
	return NewAnswerSet(len(q.Questions))
}

// AnswerSet holds the selected option per question, aligned with
// Quiz.Questions. NoAnswer marks an unanswered question.
type AnswerSet []int

// NewAnswerSet returns n unanswered selections.
func NewAnswerSet(n int) AnswerSet {
	a := make(AnswerSet, n)
	for i := range a {
		a[i] = NoAnswer
	}
	return a
}

// Select records option for question i.
func (a AnswerSet) Select(i, option int) error {
	if i < 0 || i >= len(a) {
		return fmt.Errorf("question index %d out of range [0,%d)", i, len(a))
	}
	if option < NoAnswer || option >= OptionsPerQuestion {
		return fmt.Errorf("option %d out of range [%d,%d)", option, NoAnswer, OptionsPerQuestion)
	}
	a[i] = option
	return nil
}

// Complete reports whether every question has an answer.
func (a AnswerSet) Complete() bool {
	return len(a.Unanswered()) == 0
}

// Unanswered returns the indices still set to NoAnswer.
func (a AnswerSet) Unanswered() []int {
	var out []int
	for i, v := range a {
		if v == NoAnswer {
			out = append(out, i)
		}
	}
	return out
}

// Selections returns a copy of the raw selections.
func (a AnswerSet) Selections() []int {
	out := make([]int, len(a))
	copy(out, a)
	return out
}

// Validate checks every entry is NoAnswer or a valid option index.
func (a AnswerSet) Validate() error {
	for i, v := range a {
		if v < NoAnswer || v >= OptionsPerQuestion {
			return fmt.Errorf("answer %d: option %d out of range", i, v)
		}
	}
	return nil
}

// AnswerRecord is the per-question breakdown stored with an attempt.
type AnswerRecord struct {
	QuestionIndex  int  `json:"questionIndex"`
	SelectedAnswer int  `json:"selectedAnswer"`
	CorrectAnswer  int  `json:"correctAnswer"`
	IsCorrect      bool `json:"isCorrect"`
}

// Attempt is the immutable record of one completed, scored quiz.
type Attempt struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Topic          string         `json:"topic"`
	Difficulty     Difficulty     `json:"difficulty"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Questions      []Question     `json:"questions"`
	Answers        []AnswerRecord `json:"answers"`
	CreatedAt      time.Time      `json:"createdAt"`
	EmailSent      bool           `json:"emailSent"`
}
