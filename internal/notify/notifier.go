// Package notify runs the submission pipeline for a completed quiz: score,
// record, analyze, email.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/careercoach/internal/analysis"
	"github.com/abhisek/careercoach/internal/mail"
	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/scoring"
	"github.com/abhisek/careercoach/internal/store"
)

// AttemptWriter stores attempts.
type AttemptWriter interface {
	InsertAttempt(ctx context.Context, data store.AttemptData) error
}

// NotificationLog records analysis outcomes against stored attempts.
type NotificationLog interface {
	AppendNotification(ctx context.Context, data store.NotificationEventData) error
}

// User identifies the quiz taker. An empty ID is an anonymous caller whose
// attempt is not stored.
type User struct {
	ID    string
	Email string
	Name  string
}

// DisplayName returns Name, the local part of Email, or "Student".
func (u User) DisplayName() string {
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return "Student"
}

// Outcome is what the caller shows the user after a submission.
type Outcome struct {
	Score     scoring.Result
	AttemptID string
	Persisted bool
	Analysis  string
	EmailSent bool

	// PersistErr is set when the attempt could not be stored.
	PersistErr *PersistenceError
}

// Deps wires the Notifier's collaborators. Attempts and Events may be nil.
type Deps struct {
	Analyst  analysis.Analyst
	Attempts AttemptWriter
	Events   NotificationLog
	Engine   scoring.Engine
}

// Notifier submits completed quizzes.
type Notifier struct {
	analyst  analysis.Analyst
	attempts AttemptWriter
	events   NotificationLog
	engine   scoring.Engine
	now      func() time.Time
	newID    func() string
}

// New creates a Notifier.
func New(d Deps) *Notifier {
	engine := d.Engine
	if engine.PassThreshold <= 0 {
		engine = scoring.NewEngine(0)
	}
	return &Notifier{
		analyst:  d.Analyst,
		attempts: d.Attempts,
		events:   d.Events,
		engine:   engine,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Submit scores answers, stores the attempt for signed-in users and asks
// the analyst for feedback. A storage failure never fails the submission.
// An analysis failure returns *NotificationError together with an Outcome
// that carries the computed score.
func (n *Notifier) Submit(ctx context.Context, q *quiz.Quiz, answers quiz.AnswerSet, user User) (*Outcome, error) {
	if q == nil || len(q.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	if missing := answers.Unanswered(); len(missing) > 0 {
		nums := make([]string, len(missing))
		for i, idx := range missing {
			nums[i] = fmt.Sprint(idx + 1)
		}
		return nil, fmt.Errorf("%w: questions %s", ErrIncompleteAnswers, strings.Join(nums, ", "))
	}

	result, err := n.engine.Score(q.Questions, answers)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Score: result}

	if user.ID != "" && n.attempts != nil {
		attempt := n.buildAttempt(q, user, result)
		if err := n.persist(ctx, attempt); err != nil {
			out.PersistErr = &PersistenceError{AttemptID: attempt.ID, Err: err}
			slog.ErrorContext(ctx, "failed to store quiz attempt",
				"attempt_id", attempt.ID, "user_id", user.ID, "err", err)
		} else {
			out.AttemptID = attempt.ID
			out.Persisted = true
		}
	}

	req := analysis.Request{
		UserName:       user.DisplayName(),
		Score:          result.Correct,
		TotalQuestions: result.Total,
		Topic:          q.Topic,
		Difficulty:     string(q.Difficulty),
		Questions:      q.Questions,
		UserAnswers:    answers.Selections(),
	}
	if strings.Contains(user.Email, "@") {
		req.Email = strings.TrimSpace(user.Email)
	}

	resp, err := n.analyst.Analyze(ctx, req)
	if err != nil {
		n.record(ctx, out, user, req.Email, store.NotificationEventData{ErrorMessage: err.Error()})
		return out, &NotificationError{Err: err}
	}

	out.Analysis = resp.Analysis
	out.EmailSent = resp.EmailSent
	n.record(ctx, out, user, req.Email, store.NotificationEventData{
		EmailSent: resp.EmailSent,
		Analysis:  resp.Analysis,
	})
	return out, nil
}

func (n *Notifier) buildAttempt(q *quiz.Quiz, user User, result scoring.Result) quiz.Attempt {
	return quiz.Attempt{
		ID:             n.newID(),
		UserID:         user.ID,
		Topic:          q.Topic,
		Difficulty:     q.Difficulty,
		Score:          result.Correct,
		TotalQuestions: result.Total,
		Questions:      q.Questions,
		Answers:        result.Answers,
		CreatedAt:      n.now().UTC(),
	}
}

func (n *Notifier) persist(ctx context.Context, a quiz.Attempt) error {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return n.attempts.InsertAttempt(ctx, store.AttemptData{
		ID:             a.ID,
		UserID:         a.UserID,
		Topic:          a.Topic,
		Difficulty:     string(a.Difficulty),
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		Questions:      questions,
		Answers:        answers,
		CreatedAt:      a.CreatedAt,
	})
}

// record appends the notification event for a stored attempt. Failures are
// logged only.
func (n *Notifier) record(ctx context.Context, out *Outcome, user User, email string, data store.NotificationEventData) {
	if !out.Persisted || n.events == nil {
		return
	}
	data.AttemptID = out.AttemptID
	data.UserID = user.ID
	if mail.LooksValid(email) {
		data.Email = email
	}
	if err := n.events.AppendNotification(context.WithoutCancel(ctx), data); err != nil {
		slog.WarnContext(ctx, "failed to record notification event", "attempt_id", out.AttemptID, "err", err)
	}
}
