package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Every append-only table carries a global sequence so rows of different
// kinds can be ordered against each other.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		topic TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		score INTEGER NOT NULL CHECK (score >= 0),
		total_questions INTEGER NOT NULL CHECK (total_questions > 0),
		questions TEXT NOT NULL,
		answers TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		CHECK (score <= total_questions)
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_attempts_user_created ON quiz_attempts (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS notification_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		attempt_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		email_sent INTEGER NOT NULL DEFAULT 0,
		analysis TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS notification_events_attempt ON notification_events (attempt_id, sequence)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val BIGINT NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id TEXT PRIMARY KEY,
		sequence BIGINT NOT NULL,
		user_id TEXT NOT NULL,
		topic TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		score INTEGER NOT NULL CHECK (score >= 0),
		total_questions INTEGER NOT NULL CHECK (total_questions > 0),
		questions TEXT NOT NULL,
		answers TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		CHECK (score <= total_questions)
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_attempts_user_created ON quiz_attempts (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS notification_events (
		id BIGSERIAL PRIMARY KEY,
		sequence BIGINT NOT NULL,
		timestamp BIGINT NOT NULL,
		attempt_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		email_sent BOOLEAN NOT NULL DEFAULT FALSE,
		analysis TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS notification_events_attempt ON notification_events (attempt_id, sequence)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id BIGSERIAL PRIMARY KEY,
		sequence BIGINT NOT NULL,
		timestamp BIGINT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(ctx context.Context, db *sql.DB, driver Driver) error {
	stmts := sqliteSchema
	if driver == DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
