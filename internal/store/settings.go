package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const settingsTable = "teacher_settings"

// SettingsRepo is a small key-value table for teacher configuration.
type SettingsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *SettingsRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(settingsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *SettingsRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := builder().Insert(settingsTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), millis(r.now())).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put setting %q: %w", key, err)
	}
	return nil
}

func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(settingsTable).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}
