package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter numbers logged LLM events 1, 2, 3... across restarts.
// The row is created by the first Next.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

const nextSequence = `INSERT INTO global_sequence (id, next_val) VALUES (1, 2)
	ON CONFLICT (id) DO UPDATE SET next_val = next_val + 1
	RETURNING next_val - 1`

func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	if err := c.db.QueryRowContext(ctx, nextSequence).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
