package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careercoach/internal/llm"
	"github.com/abhisek/careercoach/internal/mail"
	"github.com/abhisek/careercoach/internal/quiz"
)

const reportJSON = `{
  "summary": "Solid grasp of the basics.",
  "strengths": ["Arithmetic"],
  "improvements": ["Reading options carefully", " "],
  "recommendations": ["Practice timed quizzes"],
  "closing": "Keep it up!"
}`

func sampleRequest(email string, answers ...int) Request {
	qs := []quiz.Question{
		{Text: "What is 2+2?", Options: []string{"3", "4", "5", "6"}, CorrectIndex: 1},
		{Text: "What is 3*3?", Options: []string{"6", "9", "12", "33"}, CorrectIndex: 1},
	}
	r := Request{
		Email:          email,
		UserName:       "ada",
		TotalQuestions: len(qs),
		Topic:          "Arithmetic",
		Difficulty:     "beginner",
		Questions:      qs,
		UserAnswers:    answers,
	}
	r.Score = r.Correct()
	return r
}

func newTestService(provider llm.Provider, mailer mail.Mailer, threshold int) *Service {
	cfg := DefaultConfig()
	cfg.PassThreshold = threshold
	s := NewService(provider, mailer, cfg)
	s.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestAnalyze_SendsEmail(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(reportJSON)})
	rec := &mail.Recorder{}
	s := newTestService(mock, rec, 2)

	resp, err := s.Analyze(context.Background(), sampleRequest("ada@example.com", 1, 1))
	require.NoError(t, err)
	assert.True(t, resp.EmailSent)
	assert.Contains(t, resp.Analysis, "Performance Summary\nSolid grasp of the basics.")
	assert.Contains(t, resp.Analysis, "Areas for Improvement\n- Reading options carefully\n\n")
	assert.True(t, strings.HasSuffix(resp.Analysis, "Keep it up!"))

	sent := rec.Sent()
	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "🎉 Congratulations! You scored 2/2 on your Arithmetic quiz", msg.Subject)
	assert.Contains(t, msg.HTML, "Excellent Performance on Your Arithmetic Quiz")
	assert.Contains(t, msg.HTML, "March 14, 2026")
	assert.Contains(t, msg.Text, "Score: 2/2 (100%)")
	assert.Contains(t, msg.Text, "Keep it up!")

	req := mock.Calls[0]
	require.NotNil(t, req.Schema)
	assert.Equal(t, "quiz-analysis", req.Schema.Name)
	prompt := mock.LastPrompt()
	assert.Contains(t, prompt, "Student: ada")
	assert.Contains(t, prompt, "Percentage: 100%")
	assert.Contains(t, prompt, "Correct Answer: B. 4")
	assert.Contains(t, prompt, "✓ Correct")
	assert.Contains(t, prompt, "congratulatory message")
}

func TestAnalyze_FailingScoreTone(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(reportJSON)})
	rec := &mail.Recorder{}
	s := newTestService(mock, rec, 2)

	resp, err := s.Analyze(context.Background(), sampleRequest("ada@example.com", 1, 0))
	require.NoError(t, err)
	assert.True(t, resp.EmailSent)

	prompt := mock.LastPrompt()
	assert.Contains(t, prompt, "Student's Answer: A. 6")
	assert.Contains(t, prompt, "✗ Incorrect")
	assert.Contains(t, prompt, "Encouragement and motivation")

	msg := rec.Sent()[0]
	assert.Equal(t, "📚 Your Arithmetic quiz results - 1/2", msg.Subject)
	assert.Contains(t, msg.HTML, "Keep Learning!")
	assert.Contains(t, msg.HTML, "Don't give up!")
}

func TestAnalyze_EmailSkipped(t *testing.T) {
	tests := []struct {
		name   string
		email  string
		mailer mail.Mailer
	}{
		{"no email", "", &mail.Recorder{}},
		{"invalid email", "not-an-address", &mail.Recorder{}},
		{"no mailer", "ada@example.com", nil},
		{"send fails", "ada@example.com", &mail.Recorder{Err: errors.New("resend down")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(reportJSON)})
			s := newTestService(mock, tt.mailer, 6)

			resp, err := s.Analyze(context.Background(), sampleRequest(tt.email, 1, 1))
			require.NoError(t, err)
			assert.False(t, resp.EmailSent)
			assert.NotEmpty(t, resp.Analysis)
		})
	}
}

func TestAnalyze_LLMFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}})
	rec := &mail.Recorder{}
	s := newTestService(mock, rec, 6)

	_, err := s.Analyze(context.Background(), sampleRequest("ada@example.com", 1, 1))
	var unavailable *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable), "got %v", err)
	assert.Empty(t, rec.Sent())
}

func TestAnalyze_DefaultsUserName(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(reportJSON)})
	s := newTestService(mock, nil, 6)

	req := sampleRequest("", 1, 1)
	req.UserName = ""
	_, err := s.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, mock.LastPrompt(), "Student: Student")
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing topic", func(r *Request) { r.Topic = "" }},
		{"zero total", func(r *Request) { r.TotalQuestions = 0 }},
		{"score above total", func(r *Request) { r.Score = 3 }},
		{"question count mismatch", func(r *Request) { r.TotalQuestions = 3 }},
		{"answer count mismatch", func(r *Request) { r.UserAnswers = []int{1} }},
		{"unanswered", func(r *Request) { r.UserAnswers = []int{1, quiz.NoAnswer} }},
		{"three options", func(r *Request) { r.Questions[0].Options = []string{"a", "b", "c"} }},
		{"score contradicts answers", func(r *Request) { r.Score = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleRequest("", 1, 1)
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), ErrInvalidRequest)
		})
	}

	assert.NoError(t, sampleRequest("", 1, 0).Validate())
}

func TestReportText_OmitsEmptySections(t *testing.T) {
	got := Report{Summary: "Good.", Recommendations: []string{"Read more"}}.Text()
	assert.Equal(t, "Performance Summary\nGood.\n\nRecommendations\n- Read more", got)
}
