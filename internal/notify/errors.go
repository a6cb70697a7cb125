package notify

import (
	"errors"
	"fmt"

	"github.com/abhisek/careercoach/internal/scoring"
)

// ErrEmptyQuiz is returned by Submit for a nil quiz or one without
// questions.
var ErrEmptyQuiz = errors.New("quiz has no questions")

// ErrIncompleteAnswers is returned by Submit before scoring when any
// question is unanswered.
var ErrIncompleteAnswers = scoring.ErrIncompleteAnswers

// PersistenceError records a failed attempt write. Submit never returns it;
// it is reported on Outcome.PersistErr.
type PersistenceError struct {
	AttemptID string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist attempt %s: %v", e.AttemptID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError means the analysis call failed. The score on the
// accompanying Outcome is still valid.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("quiz analysis failed: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
