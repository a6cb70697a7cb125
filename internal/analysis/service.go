package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/careercoach/internal/llm"
	"github.com/abhisek/careercoach/internal/mail"
	"github.com/abhisek/careercoach/internal/scoring"
)

// Config controls analysis generation.
type Config struct {
	PassThreshold int
	MaxTokens     int
	Temperature   float64
}

// DefaultConfig returns the standard analysis settings.
func DefaultConfig() Config {
	return Config{
		PassThreshold: scoring.DefaultPassThreshold,
		MaxTokens:     2048,
		Temperature:   0.4,
	}
}

// Service is the in-process Analyst. A nil mailer disables email.
type Service struct {
	provider llm.Provider
	mailer   mail.Mailer
	engine   scoring.Engine
	cfg      Config
	now      func() time.Time
}

// NewService creates an analysis service.
func NewService(provider llm.Provider, mailer mail.Mailer, cfg Config) *Service {
	return &Service{
		provider: provider,
		mailer:   mailer,
		engine:   scoring.NewEngine(cfg.PassThreshold),
		cfg:      cfg,
		now:      time.Now,
	}
}

var _ Analyst = (*Service)(nil)

// Analyze writes the analysis and, when req.Email looks deliverable and a
// mailer is configured, emails it. A failed send is logged and reported as
// EmailSent=false; a failed analysis is returned as an error.
func (s *Service) Analyze(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.UserName == "" {
		req.UserName = "Student"
	}

	slog.InfoContext(ctx, "quiz analysis request",
		"score", req.Score, "total", req.TotalQuestions, "topic", req.Topic, "has_email", req.Email != "")

	passed := s.engine.Passed(req.Score)
	report, err := s.report(ctx, req, passed)
	if err != nil {
		return nil, err
	}
	text := report.Text()

	resp := &Response{Analysis: text}
	if !mail.LooksValid(req.Email) {
		return resp, nil
	}
	if s.mailer == nil {
		slog.WarnContext(ctx, "mail is not configured, skipping results email")
		return resp, nil
	}

	msg, err := buildEmail(req, text, passed, s.now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to build results email", "err", err)
		return resp, nil
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send results email", "to", req.Email, "err", err)
		return resp, nil
	}
	resp.EmailSent = true
	return resp, nil
}

func (s *Service) report(ctx context.Context, req Request, passed bool) (*Report, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req, passed)},
		},
		Schema:      ReportSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("quiz analysis: %w", err)
	}

	var out Report
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &out, nil
}
