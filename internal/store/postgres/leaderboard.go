// Package postgres stores the weekly leaderboard in PostgreSQL for shared,
// multi-device deployments.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const recordColumns = `id, name, grade, subject, week, score, attempted, correct, total_time_ms, last_played, updated_at`

// LeaderboardRepo implements leaderboard.Store on a pgx pool.
type LeaderboardRepo struct {
	pool *pgxpool.Pool
}

var _ leaderboard.Store = (*LeaderboardRepo)(nil)

func NewLeaderboardRepo(pool *pgxpool.Pool) *LeaderboardRepo {
	return &LeaderboardRepo{pool: pool}
}

// Connect opens a pool for url.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

func (r *LeaderboardRepo) Find(ctx context.Context, key leaderboard.Key) (*leaderboard.Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM weekly_leaderboard
		 WHERE name=$1 AND grade=$2 AND subject=$3 AND week=$4`,
		key.Name, key.Grade, string(key.Subject), key.Week)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, leaderboard.ErrNotFound
	}
	return rec, err
}

func (r *LeaderboardRepo) Insert(ctx context.Context, rec leaderboard.Record) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO weekly_leaderboard
		   (name, grade, subject, week, score, attempted, correct, total_time_ms, last_played, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		 ON CONFLICT (name, grade, subject, week) DO NOTHING`,
		rec.Name, rec.Grade, string(rec.Subject), rec.Week, rec.Score,
		rec.Attempted, rec.Correct, rec.TotalTimeMs, rec.LastPlayed)
	if err != nil {
		return fmt.Errorf("insert leaderboard record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leaderboard.ErrConflict
	}
	return nil
}

func (r *LeaderboardRepo) Update(ctx context.Context, key leaderboard.Key, d leaderboard.Delta, lastPlayed string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE weekly_leaderboard SET
		   score = score + $5,
		   attempted = attempted + $6,
		   correct = correct + $7,
		   total_time_ms = total_time_ms + $8,
		   last_played = $9,
		   updated_at = now()
		 WHERE name=$1 AND grade=$2 AND subject=$3 AND week=$4 AND last_played <> $9`,
		key.Name, key.Grade, string(key.Subject), key.Week,
		d.Score, d.Attempted, d.Correct, d.TotalTimeMs, lastPlayed)
	if err != nil {
		return fmt.Errorf("update leaderboard record: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := r.Find(ctx, key); err != nil {
		return err
	}
	return leaderboard.ErrAlreadyPlayed
}

const boardOrder = `ORDER BY score DESC, correct DESC, attempted DESC, total_time_ms ASC, name ASC`

func (r *LeaderboardRepo) List(ctx context.Context, subject leaderboard.Subject, week string, limit int) ([]leaderboard.Record, error) {
	return r.query(ctx,
		`SELECT `+recordColumns+` FROM weekly_leaderboard
		 WHERE subject=$1 AND week=$2 `+boardOrder+` LIMIT $3`,
		string(subject), week, limitArg(limit))
}

func (r *LeaderboardRepo) ListAll(ctx context.Context, limit int) ([]leaderboard.Record, error) {
	return r.query(ctx,
		`SELECT `+recordColumns+` FROM weekly_leaderboard `+boardOrder+` LIMIT $1`,
		limitArg(limit))
}

func (r *LeaderboardRepo) ListNames(ctx context.Context, subject leaderboard.Subject, week string, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT name FROM weekly_leaderboard
		 WHERE subject=$1 AND week=$2 ORDER BY name LIMIT $3`,
		string(subject), week, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("list player names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan player name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *LeaderboardRepo) query(ctx context.Context, sql string, args ...any) ([]leaderboard.Record, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	defer rows.Close()

	var out []leaderboard.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// limitArg maps "no limit" to NULL, which Postgres treats as LIMIT ALL.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

func scanRecord(row pgx.Row) (*leaderboard.Record, error) {
	var rec leaderboard.Record
	var subject string
	var updated time.Time
	err := row.Scan(&rec.ID, &rec.Name, &rec.Grade, &subject, &rec.Week, &rec.Score,
		&rec.Attempted, &rec.Correct, &rec.TotalTimeMs, &rec.LastPlayed, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan leaderboard record: %w", err)
	}
	rec.Subject = leaderboard.Subject(subject)
	rec.UpdatedAt = updated
	return &rec, nil
}
