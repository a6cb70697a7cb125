package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/careercoach/internal/analysis"
	"github.com/abhisek/careercoach/internal/notify"
	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/store"
	"github.com/abhisek/careercoach/internal/textgen"
)

const regenerateMessage = "the generated quiz could not be read, please generate a new quiz"

type analyzeBody struct {
	Email          string         `json:"email" validate:"omitempty,email"`
	UserName       string         `json:"userName"`
	Score          int            `json:"score" validate:"min=0"`
	TotalQuestions int            `json:"totalQuestions" validate:"min=1"`
	Topic          string         `json:"topic" validate:"required"`
	Difficulty     string         `json:"difficulty"`
	Questions      []questionBody `json:"questions" validate:"required,dive"`
	UserAnswers    []int          `json:"userAnswers" validate:"required,dive,min=0,max=3"`
}

type questionBody struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
}

func toQuestions(in []questionBody) []quiz.Question {
	out := make([]quiz.Question, len(in))
	for i, q := range in {
		out[i] = quiz.Question{Text: q.Question, Options: q.Options, CorrectIndex: q.CorrectAnswer}
	}
	return out
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeBody
	if err := decode(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, analysis.WireResponse{Error: err.Error()})
		return
	}
	req := analysis.Request{
		Email:          body.Email,
		UserName:       body.UserName,
		Score:          body.Score,
		TotalQuestions: body.TotalQuestions,
		Topic:          body.Topic,
		Difficulty:     body.Difficulty,
		Questions:      toQuestions(body.Questions),
		UserAnswers:    body.UserAnswers,
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, analysis.WireResponse{Error: err.Error()})
		return
	}

	resp, err := s.deps.Analyst.Analyze(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analysis.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		slog.ErrorContext(r.Context(), "quiz analysis failed", "err", err)
		writeJSON(w, status, analysis.WireResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, analysis.WireResponse{
		Success:        true,
		Analysis:       resp.Analysis,
		EmailSent:      resp.EmailSent,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
	})
}

type generateQuizBody struct {
	Topic      string `json:"topic" validate:"required,max=200"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=20"`
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var body generateQuizBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := s.deps.Quizzes.Generate(r.Context(), quiz.GenerateInput{
		Topic:      body.Topic,
		Difficulty: quiz.Difficulty(body.Difficulty),
		Count:      body.Count,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, q)
	case quiz.IsParseError(err):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  regenerateMessage,
			"detail": err.Error(),
		})
	case errors.Is(err, quiz.ErrTopicRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "quiz generation failed", "err", err)
		writeError(w, http.StatusBadGateway, "quiz generation failed, please try again")
	}
}

type submitQuizBody struct {
	Quiz struct {
		Topic      string         `json:"topic" validate:"required"`
		Difficulty string         `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
		Questions  []questionBody `json:"questions" validate:"required,min=1,dive"`
	} `json:"quiz"`
	Answers []int  `json:"answers" validate:"required,dive,min=-1,max=3"`
	Email   string `json:"email" validate:"omitempty,email"`
	Name    string `json:"name" validate:"max=100"`
}

type submitResponse struct {
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"totalQuestions"`
	Percentage     int                 `json:"percentage"`
	Passed         bool                `json:"passed"`
	Answers        []quiz.AnswerRecord `json:"answers"`
	AttemptID      string              `json:"attemptId,omitempty"`
	Persisted      bool                `json:"persisted"`
	Analysis       string              `json:"analysis,omitempty"`
	EmailSent      bool                `json:"emailSent"`
	Error          string              `json:"error,omitempty"`
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var body submitQuizBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := UserFrom(r.Context())
	if body.Email != "" {
		user.Email = body.Email
	}
	if body.Name != "" {
		user.Name = body.Name
	}
	if user.ID == "" && user.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required for anonymous submissions")
		return
	}

	q := &quiz.Quiz{
		Topic:      body.Quiz.Topic,
		Difficulty: quiz.Difficulty(body.Quiz.Difficulty),
		Questions:  toQuestions(body.Quiz.Questions),
	}
	if len(body.Answers) != len(q.Questions) {
		writeError(w, http.StatusBadRequest, "answers must have one entry per question")
		return
	}

	out, err := s.deps.Notifier.Submit(r.Context(), q, quiz.AnswerSet(body.Answers), user)
	var notifyErr *notify.NotificationError
	switch {
	case err == nil:
	case errors.Is(err, notify.ErrEmptyQuiz):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, notify.ErrIncompleteAnswers):
		writeError(w, http.StatusBadRequest, "please answer all questions before submitting: "+err.Error())
		return
	case errors.As(err, &notifyErr) && out != nil:
		// The score stands; the client may retry the analysis later.
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := submitResponse{
		Score:          out.Score.Correct,
		TotalQuestions: out.Score.Total,
		Percentage:     out.Score.Percentage(),
		Passed:         out.Score.Passed,
		Answers:        out.Score.Answers,
		AttemptID:      out.AttemptID,
		Persisted:      out.Persisted,
		Analysis:       out.Analysis,
		EmailSent:      out.EmailSent,
	}
	if notifyErr != nil {
		resp.Error = "analysis is unavailable right now, your score has been recorded"
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	if s.deps.Attempts == nil {
		writeError(w, http.StatusNotImplemented, "attempt history is not available")
		return
	}
	opts := store.QueryOpts{Limit: 50}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		opts.Limit = n
	}

	attempts, err := notify.History(r.Context(), s.deps.Attempts, UserFrom(r.Context()).ID, opts)
	if err != nil {
		slog.ErrorContext(r.Context(), "list attempts failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not load attempts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attempts": attempts})
}

type documentResponse struct {
	Content string `json:"content"`
}

func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var body textgen.CoverLetterInput
	if err := decode(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	text, err := s.deps.Writer.CoverLetter(r.Context(), body)
	s.writeDocument(w, r, text, err)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	var body textgen.ResumeInput
	if err := decode(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	text, err := s.deps.Writer.Resume(r.Context(), body)
	s.writeDocument(w, r, text, err)
}

func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, text string, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, documentResponse{Content: strings.TrimSpace(text)})
	case errors.Is(err, textgen.ErrMissingField):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "document generation failed", "err", err)
		writeError(w, http.StatusBadGateway, "generation failed, please try again")
	}
}
