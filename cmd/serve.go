package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/abhisek/careercoach/internal/notify"
	"github.com/abhisek/careercoach/internal/quiz"
	"github.com/abhisek/careercoach/internal/scoring"
	"github.com/abhisek/careercoach/internal/server"
	"github.com/abhisek/careercoach/internal/textgen"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := newProvider(ctx, st.EventRepo())
		if err != nil {
			return err
		}
		analyst, err := newAnalyst(provider)
		if err != nil {
			return err
		}

		writer := textgen.New(provider, textgen.DefaultConfig())
		auth := server.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)
		if !auth.Enabled() {
			slog.Warn("CAREERCOACH_JWT_SECRET not set; all requests are anonymous")
		}

		srv := server.New(server.Deps{
			Quizzes: quiz.NewGenerator(writer),
			Notifier: notify.New(notify.Deps{
				Analyst:  analyst,
				Attempts: st.AttemptRepo(),
				Events:   st.EventRepo(),
				Engine:   scoring.NewEngine(cfg.PassThreshold),
			}),
			Analyst:  analyst,
			Writer:   writer,
			Attempts: st.AttemptRepo(),
			Auth:     auth,
		}, server.Options{CORSOrigins: cfg.CORSOrigins})

		slog.Info("serving", "addr", cfg.HTTPAddr, "db", st.Driver(), "model", provider.ModelID())
		if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides CAREERCOACH_HTTP_ADDR)")
}
