package cache

import (
	"context"
	"errors"

	"github.com/abhisek/brainarcade/internal/problemgen"
)

type tiered struct {
	first, second problemgen.SetCache
}

// Tiered checks first, then second, copying second-tier hits into first.
// Store writes both tiers.
func Tiered(first, second problemgen.SetCache) problemgen.SetCache {
	return &tiered{first: first, second: second}
}

func (t *tiered) Find(ctx context.Context, key problemgen.SetKey) ([]problemgen.Sentence, bool, error) {
	set, ok, firstErr := t.first.Find(ctx, key)
	if ok {
		return set, true, nil
	}
	set, ok, err := t.second.Find(ctx, key)
	if err != nil {
		return nil, false, errors.Join(firstErr, err)
	}
	if ok {
		_ = t.first.Store(ctx, key, set)
	}
	return set, ok, nil
}

func (t *tiered) Store(ctx context.Context, key problemgen.SetKey, set []problemgen.Sentence) error {
	return errors.Join(t.second.Store(ctx, key, set), t.first.Store(ctx, key, set))
}
