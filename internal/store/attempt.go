package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAttempt is returned when an attempt violates the score bounds.
var ErrInvalidAttempt = errors.New("invalid attempt")

type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *attemptRepo) InsertAttempt(ctx context.Context, data AttemptData) error {
	if data.ID == "" || data.UserID == "" {
		return fmt.Errorf("%w: id and user id are required", ErrInvalidAttempt)
	}
	if data.TotalQuestions <= 0 || data.Score < 0 || data.Score > data.TotalQuestions {
		return fmt.Errorf("%w: score %d of %d", ErrInvalidAttempt, data.Score, data.TotalQuestions)
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO quiz_attempts
		(id, sequence, user_id, topic, difficulty, score, total_questions, questions, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		data.ID, seqNum, data.UserID, data.Topic, data.Difficulty, data.Score,
		data.TotalQuestions, string(data.Questions), string(data.Answers),
		data.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	return nil
}

// ListAttempts returns a user's attempts, newest first.
func (r *attemptRepo) ListAttempts(ctx context.Context, userID string, opts QueryOpts) ([]AttemptRecord, error) {
	var f filter
	f.add("a.user_id = $%d", userID)
	f.applyOpts(opts, "a.", "created_at")

	query := `SELECT a.id, a.sequence, a.user_id, a.topic, a.difficulty, a.score,
		a.total_questions, a.questions, a.answers, a.created_at,
		COALESCE((SELECT n.email_sent FROM notification_events n
			WHERE n.attempt_id = a.id ORDER BY n.sequence DESC LIMIT 1), FALSE)
		FROM quiz_attempts a` + f.where() + " ORDER BY a.sequence DESC" + f.limit(opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var records []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		var questions, answers string
		var created int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.UserID, &rec.Topic, &rec.Difficulty,
			&rec.Score, &rec.TotalQuestions, &questions, &answers, &created, &rec.EmailSent); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Questions = []byte(questions)
		rec.Answers = []byte(answers)
		rec.CreatedAt = time.UnixMilli(created)
		records = append(records, rec)
	}
	return records, rows.Err()
}
