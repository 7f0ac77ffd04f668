package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order on every Open. Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS weekly_leaderboard (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT    NOT NULL,
		grade         INTEGER NOT NULL,
		subject       TEXT    NOT NULL,
		week          TEXT    NOT NULL,
		score         INTEGER NOT NULL DEFAULT 0,
		attempted     INTEGER NOT NULL DEFAULT 0,
		correct       INTEGER NOT NULL DEFAULT 0,
		total_time_ms INTEGER NOT NULL DEFAULT 0,
		last_played   TEXT    NOT NULL DEFAULT '',
		updated_at    INTEGER NOT NULL DEFAULT 0,
		UNIQUE (name, grade, subject, week)
	)`,
	`CREATE INDEX IF NOT EXISTS weekly_leaderboard_board
		ON weekly_leaderboard (subject, week, score DESC)`,
	`CREATE TABLE IF NOT EXISTS daily_questions (
		player     TEXT    NOT NULL,
		grade      INTEGER NOT NULL,
		date       TEXT    NOT NULL,
		payload    TEXT    NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (player, grade, date)
	)`,
	`CREATE TABLE IF NOT EXISTS teacher_settings (
		key        TEXT PRIMARY KEY,
		value      TEXT    NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id       INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
