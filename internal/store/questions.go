package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const questionsTable = "daily_questions"

// QuestionRepo keeps one encoded question set per player, grade and day.
type QuestionRepo struct {
	db  *sql.DB
	now func() time.Time
}

func questionPredicate(player string, grade int, date string) *entsql.Predicate {
	return entsql.And(
		entsql.EQ("player", player),
		entsql.EQ("grade", grade),
		entsql.EQ("date", date),
	)
}

// Get returns the stored payload, or false when there is none.
func (r *QuestionRepo) Get(ctx context.Context, player string, grade int, date string) ([]byte, bool, error) {
	b := builder()
	query, args := b.Select("payload").
		From(b.Table(questionsTable)).
		Where(questionPredicate(player, grade, date)).
		Query()

	var payload string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("get question set: %w", err)
	}
	return []byte(payload), true, nil
}

// Put stores payload, replacing any earlier set for the same day.
func (r *QuestionRepo) Put(ctx context.Context, player string, grade int, date string, payload []byte) error {
	query, args := builder().Insert(questionsTable).
		Columns("player", "grade", "date", "payload", "created_at").
		Values(player, grade, date, string(payload), millis(r.now())).
		OnConflict(entsql.ConflictColumns("player", "grade", "date"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put question set: %w", err)
	}
	return nil
}

// Prune deletes sets for days before the given date and reports how many
// were removed.
func (r *QuestionRepo) Prune(ctx context.Context, before string) (int64, error) {
	query, args := builder().Delete(questionsTable).
		Where(entsql.LT("date", before)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune question sets: %w", err)
	}
	return res.RowsAffected()
}
