// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/careercoach/internal/mail"
	"github.com/abhisek/careercoach/internal/scoring"
)

// Config holds everything outside the LLM provider settings, which live in
// llm.Config.
type Config struct {
	HTTPAddr string

	DBDriver string // sqlite|postgres
	DBDSN    string // empty means the default sqlite file

	JWTSecret   string
	JWTIssuer   string
	CORSOrigins []string

	PassThreshold int

	// AnalysisURL points at a remote analysis endpoint. Empty runs
	// analysis in-process.
	AnalysisURL string
	AnalysisKey string

	LogLevel string

	Mail mail.Config
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv reads CAREERCOACH_* variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("CAREERCOACH_HTTP_ADDR", ":8080"),
		DBDriver:      envOr("CAREERCOACH_DB_DRIVER", "sqlite"),
		DBDSN:         os.Getenv("CAREERCOACH_DB_DSN"),
		JWTSecret:     os.Getenv("CAREERCOACH_JWT_SECRET"),
		JWTIssuer:     envOr("CAREERCOACH_JWT_ISSUER", "careercoach"),
		CORSOrigins:   csvOr("CAREERCOACH_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		PassThreshold: envInt("CAREERCOACH_PASS_THRESHOLD", scoring.DefaultPassThreshold),
		AnalysisURL:   os.Getenv("CAREERCOACH_ANALYSIS_URL"),
		AnalysisKey:   os.Getenv("CAREERCOACH_ANALYSIS_KEY"),
		LogLevel:      envOr("CAREERCOACH_LOG_LEVEL", "info"),
		Mail:          mail.ConfigFromEnv(),
	}
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if c.PassThreshold <= 0 {
		return fmt.Errorf("pass threshold must be positive, got %d", c.PassThreshold)
	}
	switch c.DBDriver {
	case "sqlite", "postgres", "pgx":
	default:
		return fmt.Errorf("unknown db driver %q", c.DBDriver)
	}
	if (c.DBDriver == "postgres" || c.DBDriver == "pgx") && c.DBDSN == "" {
		return errors.New("CAREERCOACH_DB_DSN is required for postgres")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
