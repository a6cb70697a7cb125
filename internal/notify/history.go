package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/store"
)

// AttemptLister reads a user's attempt history.
type AttemptLister interface {
	ListAttempts(ctx context.Context, userID string, opts store.QueryOpts) ([]store.AttemptRecord, error)
}

// History returns the user's attempts, newest first.
func History(ctx context.Context, repo AttemptLister, userID string, opts store.QueryOpts) ([]quiz.Attempt, error) {
	recs, err := repo.ListAttempts(ctx, userID, opts)
	if err != nil {
		return nil, err
	}
	out := make([]quiz.Attempt, 0, len(recs))
	for _, r := range recs {
		a, err := decodeAttempt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeAttempt(r store.AttemptRecord) (quiz.Attempt, error) {
	a := quiz.Attempt{
		ID:             r.ID,
		UserID:         r.UserID,
		Topic:          r.Topic,
		Difficulty:     quiz.Difficulty(r.Difficulty),
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CreatedAt:      r.CreatedAt,
		EmailSent:      r.EmailSent,
	}
	if err := json.Unmarshal(r.Questions, &a.Questions); err != nil {
		return quiz.Attempt{}, fmt.Errorf("decode questions of attempt %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Answers, &a.Answers); err != nil {
		return quiz.Attempt{}, fmt.Errorf("decode answers of attempt %s: %w", r.ID, err)
	}
	return a, nil
}
