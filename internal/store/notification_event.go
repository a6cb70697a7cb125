package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendNotification(ctx context.Context, data NotificationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO notification_events
		(sequence, timestamp, attempt_id, user_id, email, email_sent, analysis, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		seqNum, time.Now().UnixMilli(), data.AttemptID, data.UserID, data.Email,
		data.EmailSent, data.Analysis, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save notification event: %w", err)
	}
	return nil
}
