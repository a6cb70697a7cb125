// Package analysis writes the post-quiz performance analysis and emails it
// to the student.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/careercoach/internal/quiz"
)

// Path is the HTTP route of the analysis endpoint.
const Path = "/functions/v1/analyze-quiz-results"

// ErrInvalidRequest is wrapped by request validation failures.
var ErrInvalidRequest = errors.New("invalid analysis request")

// Analyst produces an analysis for a scored quiz and may email it.
type Analyst interface {
	Analyze(ctx context.Context, req Request) (*Response, error)
}

// Request is a scored attempt. Email is optional; the analyst decides
// whether it is deliverable.
type Request struct {
	Email          string          `json:"email,omitempty"`
	UserName       string          `json:"userName"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	Topic          string          `json:"topic"`
	Difficulty     string          `json:"difficulty"`
	Questions      []quiz.Question `json:"questions"`
	UserAnswers    []int           `json:"userAnswers"`
}

// Validate checks the request is internally consistent.
func (r Request) Validate() error {
	switch {
	case strings.TrimSpace(r.Topic) == "":
		return fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	case r.TotalQuestions <= 0:
		return fmt.Errorf("%w: totalQuestions must be positive", ErrInvalidRequest)
	case r.Score < 0 || r.Score > r.TotalQuestions:
		return fmt.Errorf("%w: score %d outside [0,%d]", ErrInvalidRequest, r.Score, r.TotalQuestions)
	case len(r.Questions) != r.TotalQuestions:
		return fmt.Errorf("%w: %d questions for totalQuestions %d", ErrInvalidRequest, len(r.Questions), r.TotalQuestions)
	case len(r.UserAnswers) != len(r.Questions):
		return fmt.Errorf("%w: %d answers for %d questions", ErrInvalidRequest, len(r.UserAnswers), len(r.Questions))
	}
	for i, q := range r.Questions {
		if len(q.Options) != quiz.OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidRequest, i+1, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= quiz.OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has no valid correct answer", ErrInvalidRequest, i+1)
		}
		if a := r.UserAnswers[i]; a < 0 || a >= quiz.OptionsPerQuestion {
			return fmt.Errorf("%w: answer %d is %d", ErrInvalidRequest, i+1, a)
		}
	}
	if c := r.Correct(); c != r.Score {
		return fmt.Errorf("%w: score %d does not match %d correct answers", ErrInvalidRequest, r.Score, c)
	}
	return nil
}

// Correct counts the answers matching the key.
func (r Request) Correct() int {
	n := 0
	for i, q := range r.Questions {
		if i < len(r.UserAnswers) && r.UserAnswers[i] == q.CorrectIndex {
			n++
		}
	}
	return n
}

// Percentage is the rounded whole percentage of Score over TotalQuestions.
func (r Request) Percentage() int {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return (200*r.Score + r.TotalQuestions) / (2 * r.TotalQuestions)
}

// Response is the analyst's result.
type Response struct {
	Analysis  string `json:"analysis"`
	EmailSent bool   `json:"emailSent"`
}

// WireResponse is the JSON body returned by the HTTP endpoint.
type WireResponse struct {
	Success        bool   `json:"success"`
	Analysis       string `json:"analysis,omitempty"`
	EmailSent      bool   `json:"emailSent"`
	Score          int    `json:"score,omitempty"`
	TotalQuestions int    `json:"totalQuestions,omitempty"`
	Error          string `json:"error,omitempty"`
}
