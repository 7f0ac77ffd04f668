package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Aggregator folds a finished session into the weekly record.
type Aggregator interface {
	Apply(ctx context.Context, key Key, d Delta, today string) error
}

// StoreAggregator inserts the first record of the week and otherwise relies
// on Store.Update's atomic increment.
type StoreAggregator struct {
	store Store
	now   func() time.Time
}

func NewStoreAggregator(store Store) *StoreAggregator {
	return &StoreAggregator{store: store, now: time.Now}
}

func (a *StoreAggregator) Apply(ctx context.Context, key Key, d Delta, today string) error {
	_, err := a.store.Find(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		err = a.store.Insert(ctx, Record{
			Name:        key.Name,
			Grade:       key.Grade,
			Subject:     key.Subject,
			Week:        key.Week,
			Score:       d.Score,
			Attempted:   d.Attempted,
			Correct:     d.Correct,
			TotalTimeMs: d.TotalTimeMs,
			LastPlayed:  today,
			UpdatedAt:   a.now(),
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConflict) {
			return fmt.Errorf("insert record: %w", err)
		}
		// Another finalize created the row first; add to it instead.
	case err != nil:
		return fmt.Errorf("find record: %w", err)
	}

	if err := a.store.Update(ctx, key, d, today); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}
