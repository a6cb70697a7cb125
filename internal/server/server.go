// Package server exposes the quiz, analysis and writing tools over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/careercoach/internal/analysis"
	"github.com/abhisek/careercoach/internal/notify"
	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/textgen"
)

// QuizGenerator produces parsed quizzes.
type QuizGenerator interface {
	Generate(ctx context.Context, in quiz.GenerateInput) (*quiz.Quiz, error)
}

// Submitter runs the submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, q *quiz.Quiz, answers quiz.AnswerSet, user notify.User) (*notify.Outcome, error)
}

// DocumentWriter writes career documents.
type DocumentWriter interface {
	CoverLetter(ctx context.Context, in textgen.CoverLetterInput) (string, error)
	Resume(ctx context.Context, in textgen.ResumeInput) (string, error)
}

// Deps are the handlers' collaborators. A nil Attempts disables history.
type Deps struct {
	Quizzes  QuizGenerator
	Notifier Submitter
	Analyst  analysis.Analyst
	Writer   DocumentWriter
	Attempts notify.AttemptLister
	Auth     *Auth
}

// Options configures the router.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Server holds the HTTP handlers.
type Server struct {
	deps Deps
	opts Options
}

// New creates a Server.
func New(deps Deps, opts Options) *Server {
	if deps.Auth == nil {
		deps.Auth = NewAuth("", "")
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 2 * time.Minute
	}
	return &Server{deps: deps, opts: opts}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Post(analysis.Path, s.handleAnalyze)

	r.Route("/api", func(api chi.Router) {
		api.Use(s.deps.Auth.Middleware)

		api.Post("/quizzes", s.handleGenerateQuiz)
		api.Post("/quizzes/submit", s.handleSubmitQuiz)
		api.Post("/cover-letters", s.handleCoverLetter)
		api.Post("/resumes", s.handleResume)

		api.With(RequireUser).Get("/attempts", s.handleListAttempts)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
