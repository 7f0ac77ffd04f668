package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/abhisek/brainarcade/internal/leaderboard"
)

const leaderboardTable = "weekly_leaderboard"

var leaderboardColumns = []string{
	"id", "name", "grade", "subject", "week", "score", "attempted",
	"correct", "total_time_ms", "last_played", "updated_at",
}

// boardOrder mirrors leaderboard.Less.
var boardOrder = []string{
	entsql.Desc("score"), entsql.Desc("correct"), entsql.Desc("attempted"),
	entsql.Asc("total_time_ms"), entsql.Asc("name"),
}

// LeaderboardRepo implements leaderboard.Store on SQLite.
type LeaderboardRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ leaderboard.Store = (*LeaderboardRepo)(nil)

func keyPredicate(key leaderboard.Key) *entsql.Predicate {
	return entsql.And(
		entsql.EQ("name", key.Name),
		entsql.EQ("grade", key.Grade),
		entsql.EQ("subject", string(key.Subject)),
		entsql.EQ("week", key.Week),
	)
}

func (r *LeaderboardRepo) Find(ctx context.Context, key leaderboard.Key) (*leaderboard.Record, error) {
	b := builder()
	query, args := b.Select(leaderboardColumns...).
		From(b.Table(leaderboardTable)).
		Where(keyPredicate(key)).
		Query()

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, leaderboard.ErrNotFound
	}
	return rec, err
}

func (r *LeaderboardRepo) Insert(ctx context.Context, rec leaderboard.Record) error {
	query, args := builder().Insert(leaderboardTable).
		Columns(leaderboardColumns[1:]...).
		Values(rec.Name, rec.Grade, string(rec.Subject), rec.Week, rec.Score,
			rec.Attempted, rec.Correct, rec.TotalTimeMs, rec.LastPlayed, millis(r.now())).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return leaderboard.ErrConflict
		}
		return fmt.Errorf("insert leaderboard record: %w", err)
	}
	return nil
}

// Update adds d in a single statement guarded by last_played <> lastPlayed,
// so two finishers on the same day cannot both apply.
func (r *LeaderboardRepo) Update(ctx context.Context, key leaderboard.Key, d leaderboard.Delta, lastPlayed string) error {
	query, args := builder().Update(leaderboardTable).
		Add("score", d.Score).
		Add("attempted", d.Attempted).
		Add("correct", d.Correct).
		Add("total_time_ms", d.TotalTimeMs).
		Set("last_played", lastPlayed).
		Set("updated_at", millis(r.now())).
		Where(entsql.And(keyPredicate(key), entsql.NEQ("last_played", lastPlayed))).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update leaderboard record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update leaderboard record: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing changed: either the row is missing or the guard held.
	if _, err := r.Find(ctx, key); err != nil {
		return err
	}
	return leaderboard.ErrAlreadyPlayed
}

func (r *LeaderboardRepo) List(ctx context.Context, subject leaderboard.Subject, week string, limit int) ([]leaderboard.Record, error) {
	b := builder()
	sel := b.Select(leaderboardColumns...).
		From(b.Table(leaderboardTable)).
		Where(entsql.And(entsql.EQ("subject", string(subject)), entsql.EQ("week", week))).
		OrderBy(boardOrder...)
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.queryRecords(ctx, sel)
}

func (r *LeaderboardRepo) ListAll(ctx context.Context, limit int) ([]leaderboard.Record, error) {
	b := builder()
	sel := b.Select(leaderboardColumns...).
		From(b.Table(leaderboardTable)).
		OrderBy(boardOrder...)
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.queryRecords(ctx, sel)
}

func (r *LeaderboardRepo) ListNames(ctx context.Context, subject leaderboard.Subject, week string, limit int) ([]string, error) {
	b := builder()
	sel := b.Select("name").
		Distinct().
		From(b.Table(leaderboardTable)).
		Where(entsql.And(entsql.EQ("subject", string(subject)), entsql.EQ("week", week))).
		OrderBy(entsql.Asc("name"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *LeaderboardRepo) queryRecords(ctx context.Context, sel *entsql.Selector) ([]leaderboard.Record, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
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

func scanRecord(row rowScanner) (*leaderboard.Record, error) {
	var rec leaderboard.Record
	var subject string
	var updated int64
	err := row.Scan(&rec.ID, &rec.Name, &rec.Grade, &subject, &rec.Week, &rec.Score,
		&rec.Attempted, &rec.Correct, &rec.TotalTimeMs, &rec.LastPlayed, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan leaderboard record: %w", err)
	}
	rec.Subject = leaderboard.Subject(subject)
	rec.UpdatedAt = fromMillis(updated)
	return &rec, nil
}
