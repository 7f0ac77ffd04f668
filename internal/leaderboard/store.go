package leaderboard

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("leaderboard record not found")
	ErrConflict      = errors.New("leaderboard record already exists")
	ErrAlreadyPlayed = errors.New("already played today")
)

// Store persists weekly records.
type Store interface {
	// Find returns the record for key, or ErrNotFound.
	Find(ctx context.Context, key Key) (*Record, error)

	// Insert creates a record. Returns ErrConflict if the key exists.
	Insert(ctx context.Context, rec Record) error

	// Update atomically adds d to the record's totals and sets last_played,
	// unless last_played already equals lastPlayed, in which case it
	// returns ErrAlreadyPlayed and changes nothing.
	Update(ctx context.Context, key Key, d Delta, lastPlayed string) error

	// List returns the subject's records for a week sorted by Less.
	List(ctx context.Context, subject Subject, week string, limit int) ([]Record, error)

	// ListNames returns the distinct player names for a week, sorted.
	ListNames(ctx context.Context, subject Subject, week string, limit int) ([]string, error)

	// ListAll returns the top records across every subject and week.
	ListAll(ctx context.Context, limit int) ([]Record, error)
}
