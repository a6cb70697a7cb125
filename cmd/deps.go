package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/careercoach/internal/analysis"
	"github.com/abhisek/careercoach/internal/llm"
	"github.com/abhisek/careercoach/internal/mail"
	"github.com/abhisek/careercoach/internal/store"
	"github.com/spf13/cobra"
)

// openStore opens the configured database. --db always selects a SQLite
// file; otherwise CAREERCOACH_DB_DRIVER and CAREERCOACH_DB_DSN apply, with
// the default SQLite path as the fallback.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	ctx := cmd.Context()

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		return store.Open(ctx, store.DriverSQLite, p)
	}

	driver, err := store.ParseDriver(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	dsn := cfg.DBDSN
	if dsn == "" && driver == store.DriverSQLite {
		if dsn, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	s, err := store.Open(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newProvider builds the LLM provider from the environment. A nil sink
// skips event recording.
func newProvider(ctx context.Context, sink llm.EventSink) (llm.Provider, error) {
	p, err := llm.NewProviderFromEnv(ctx, sink)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	return p, nil
}

// newAnalyst returns the remote analysis client when CAREERCOACH_ANALYSIS_URL
// is set, and the in-process service otherwise.
func newAnalyst(provider llm.Provider) (analysis.Analyst, error) {
	if cfg.AnalysisURL != "" {
		return analysis.NewClient(cfg.AnalysisURL, cfg.AnalysisKey), nil
	}
	if provider == nil {
		return nil, fmt.Errorf("analysis needs an LLM provider or CAREERCOACH_ANALYSIS_URL")
	}

	mailer, err := mail.New(cfg.Mail)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	acfg := analysis.DefaultConfig()
	acfg.PassThreshold = cfg.PassThreshold
	return analysis.NewService(provider, mailer, acfg), nil
}
