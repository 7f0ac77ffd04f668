package problemgen

import (
	"context"
	"fmt"
)

// SetKey identifies one player's sentence set for a day. Grade is part of
// the key so a player who changes grade mid-day gets a fresh set.
type SetKey struct {
	Player string
	Grade  int
	Date   string
}

func (k SetKey) String() string {
	return fmt.Sprintf("%s|%d|%s", k.Player, k.Grade, k.Date)
}

// SetCache stores a sentence set per player per day.
type SetCache interface {
	// Find returns the cached set and true, or false when nothing is cached.
	Find(ctx context.Context, key SetKey) ([]Sentence, bool, error)

	// Store saves the set for key.
	Store(ctx context.Context, key SetKey, set []Sentence) error
}
