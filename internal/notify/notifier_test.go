package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careercoach/internal/analysis"
	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/scoring"
	"github.com/abhisek/careercoach/internal/store"
)

type stubAnalyst struct {
	resp  *analysis.Response
	err   error
	calls []analysis.Request
}

func (s *stubAnalyst) Analyze(_ context.Context, req analysis.Request) (*analysis.Response, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type failingAttempts struct{ err error }

func (f failingAttempts) InsertAttempt(context.Context, store.AttemptData) error { return f.err }

type recordingEvents struct{ events []store.NotificationEventData }

func (r *recordingEvents) AppendNotification(_ context.Context, d store.NotificationEventData) error {
	r.events = append(r.events, d)
	return nil
}

func twoPlusTwo(t *testing.T) *quiz.Quiz {
	t.Helper()
	qs, err := quiz.Parse("Question: What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nCorrect Answer: B")
	require.NoError(t, err)
	return &quiz.Quiz{Topic: "Arithmetic", Difficulty: quiz.Beginner, Questions: qs}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSubmit_EndToEnd(t *testing.T) {
	s := openStore(t)
	analyst := &stubAnalyst{resp: &analysis.Response{Analysis: "Well done", EmailSent: true}}
	n := New(Deps{
		Analyst:  analyst,
		Attempts: s.AttemptRepo(),
		Events:   s.EventRepo(),
		Engine:   scoring.Engine{PassThreshold: 1},
	})
	ctx := context.Background()

	out, err := n.Submit(ctx, twoPlusTwo(t), quiz.AnswerSet{1}, User{ID: "u1", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Score.Correct)
	assert.Equal(t, 1, out.Score.Total)
	assert.True(t, out.Score.Passed)
	assert.True(t, out.Persisted)
	assert.Nil(t, out.PersistErr)
	assert.Equal(t, "Well done", out.Analysis)
	assert.True(t, out.EmailSent)

	require.Len(t, analyst.calls, 1)
	req := analyst.calls[0]
	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, "ada", req.UserName)
	assert.Equal(t, []int{1}, req.UserAnswers)
	assert.Equal(t, "beginner", req.Difficulty)

	history, err := History(ctx, s.AttemptRepo(), "u1", store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	a := history[0]
	assert.Equal(t, out.AttemptID, a.ID)
	assert.Equal(t, 1, a.Score)
	assert.True(t, a.EmailSent)
	assert.Equal(t, "What is 2+2?", a.Questions[0].Text)
	assert.Equal(t, quiz.AnswerRecord{QuestionIndex: 0, SelectedAnswer: 1, CorrectAnswer: 1, IsCorrect: true}, a.Answers[0])
}

func TestSubmit_WrongAnswer(t *testing.T) {
	analyst := &stubAnalyst{resp: &analysis.Response{Analysis: "Keep going"}}
	n := New(Deps{Analyst: analyst, Engine: scoring.Engine{PassThreshold: 1}})

	out, err := n.Submit(context.Background(), twoPlusTwo(t), quiz.AnswerSet{0}, User{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Score.Correct)
	assert.False(t, out.Score.Passed)
	assert.False(t, out.EmailSent)
	assert.Equal(t, "Student", analyst.calls[0].UserName)
	assert.Empty(t, analyst.calls[0].Email)
}

func TestSubmit_IncompleteRejectedBeforeScoring(t *testing.T) {
	analyst := &stubAnalyst{resp: &analysis.Response{}}
	n := New(Deps{Analyst: analyst})

	q := twoPlusTwo(t)
	_, err := n.Submit(context.Background(), q, q.NewAnswers(), User{ID: "u1"})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
	assert.Contains(t, err.Error(), "questions 1")
	assert.Empty(t, analyst.calls)
}

func TestSubmit_EmptyQuizRejected(t *testing.T) {
	analyst := &stubAnalyst{resp: &analysis.Response{}}
	var inserts int
	n := New(Deps{
		Analyst: analyst,
		Attempts: attemptFunc(func(context.Context, store.AttemptData) error {
			inserts++
			return nil
		}),
	})

	for name, q := range map[string]*quiz.Quiz{
		"nil":          nil,
		"no questions": {Topic: "Arithmetic", Difficulty: quiz.Beginner},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := n.Submit(context.Background(), q, quiz.AnswerSet{}, User{ID: "u1", Email: "ada@example.com"})
			assert.ErrorIs(t, err, ErrEmptyQuiz)
			assert.Nil(t, out)
		})
	}
	assert.Zero(t, inserts)
	assert.Empty(t, analyst.calls)
}

func TestSubmit_PersistenceFailureDoesNotAbort(t *testing.T) {
	analyst := &stubAnalyst{resp: &analysis.Response{Analysis: "Nice", EmailSent: true}}
	events := &recordingEvents{}
	n := New(Deps{
		Analyst:  analyst,
		Attempts: failingAttempts{err: errors.New("database is locked")},
		Events:   events,
	})

	out, err := n.Submit(context.Background(), twoPlusTwo(t), quiz.AnswerSet{1}, User{ID: "u1", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	require.NotNil(t, out.PersistErr)
	assert.Contains(t, out.PersistErr.Error(), "database is locked")
	assert.True(t, out.EmailSent)
	assert.Equal(t, 1, out.Score.Correct)
	assert.Empty(t, events.events, "no event without a stored attempt")
}

func TestSubmit_AnalysisFailureKeepsScore(t *testing.T) {
	analyst := &stubAnalyst{err: errors.New("gateway timeout")}
	events := &recordingEvents{}
	n := New(Deps{Analyst: analyst, Attempts: openStore(t).AttemptRepo(), Events: events})

	out, err := n.Submit(context.Background(), twoPlusTwo(t), quiz.AnswerSet{1}, User{ID: "u1", Email: "ada@example.com"})
	var ne *NotificationError
	require.True(t, errors.As(err, &ne), "got %v", err)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.Score.Correct)
	assert.True(t, out.Persisted)
	assert.False(t, out.EmailSent)

	require.Len(t, events.events, 1)
	assert.Equal(t, "gateway timeout", events.events[0].ErrorMessage)
	assert.Equal(t, out.AttemptID, events.events[0].AttemptID)
}

func TestSubmit_EmailPrecheck(t *testing.T) {
	analyst := &stubAnalyst{resp: &analysis.Response{}}
	n := New(Deps{Analyst: analyst})

	_, err := n.Submit(context.Background(), twoPlusTwo(t), quiz.AnswerSet{1}, User{Email: "not-an-email"})
	require.NoError(t, err)
	assert.Empty(t, analyst.calls[0].Email)
}

func TestSubmit_AnonymousNotPersisted(t *testing.T) {
	s := openStore(t)
	n := New(Deps{Analyst: &stubAnalyst{resp: &analysis.Response{}}, Attempts: s.AttemptRepo()})

	out, err := n.Submit(context.Background(), twoPlusTwo(t), quiz.AnswerSet{1}, User{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.Nil(t, out.PersistErr)
	assert.Empty(t, out.AttemptID)
}

func TestSubmit_AttemptFields(t *testing.T) {
	var got store.AttemptData
	capture := attemptFunc(func(_ context.Context, d store.AttemptData) error {
		got = d
		return nil
	})
	n := New(Deps{Analyst: &stubAnalyst{resp: &analysis.Response{}}, Attempts: capture})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n.now = func() time.Time { return fixed }
	n.newID = func() string { return "attempt-1" }

	out, err := n.Submit(context.Background(), twoPlusTwo(t), quiz.AnswerSet{2}, User{ID: "u9"})
	require.NoError(t, err)
	assert.Equal(t, "attempt-1", out.AttemptID)
	assert.Equal(t, "attempt-1", got.ID)
	assert.Equal(t, "u9", got.UserID)
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, 1, got.TotalQuestions)
	assert.Equal(t, fixed, got.CreatedAt)
	assert.JSONEq(t, `[{"questionIndex":0,"selectedAnswer":2,"correctAnswer":1,"isCorrect":false}]`, string(got.Answers))
	assert.JSONEq(t, `[{"question":"What is 2+2?","options":["3","4","5","6"],"correctAnswer":1}]`, string(got.Questions))
}

type attemptFunc func(context.Context, store.AttemptData) error

func (f attemptFunc) InsertAttempt(ctx context.Context, d store.AttemptData) error { return f(ctx, d) }

func TestDisplayName(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{Name: "Ada Lovelace", Email: "ada@example.com"}, "Ada Lovelace"},
		{User{Email: "grace@example.com"}, "grace"},
		{User{Email: "@example.com"}, "Student"},
		{User{}, "Student"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.user.DisplayName())
	}
}
