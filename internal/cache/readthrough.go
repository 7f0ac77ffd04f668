package cache

import (
	"context"

	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"golang.org/x/sync/singleflight"
)

// ReadThrough is a SentenceSource that serves a player's day from the
// cache and generates at most once per key on a miss.
type ReadThrough struct {
	cache  problemgen.SetCache
	source problemgen.SentenceSource
	log    *logger.Logger
	sf     singleflight.Group
}

var _ problemgen.SentenceSource = (*ReadThrough)(nil)

func NewReadThrough(cache problemgen.SetCache, source problemgen.SentenceSource, log *logger.Logger) *ReadThrough {
	if log == nil {
		log = logger.NewNop()
	}
	return &ReadThrough{cache: cache, source: source, log: log}
}

func (r *ReadThrough) Sentences(ctx context.Context, req problemgen.SentenceRequest) ([]problemgen.Sentence, error) {
	key := problemgen.SetKey{Player: req.Player, Grade: req.Grade, Date: req.Date}

	if set, ok := r.find(ctx, key); ok {
		return set, nil
	}

	result, err, _ := r.sf.Do(key.String(), func() (any, error) {
		// Re-check in case another caller filled it.
		if set, ok := r.find(ctx, key); ok {
			return set, nil
		}

		set, err := r.source.Sentences(ctx, req)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Store(ctx, key, set); err != nil {
			r.log.Warn("store sentence set", "key", key.String(), "error", err)
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]problemgen.Sentence), nil
}

func (r *ReadThrough) find(ctx context.Context, key problemgen.SetKey) ([]problemgen.Sentence, bool) {
	set, ok, err := r.cache.Find(ctx, key)
	if err != nil {
		r.log.Warn("read sentence cache", "key", key.String(), "error", err)
		return nil, false
	}
	return set, ok
}
