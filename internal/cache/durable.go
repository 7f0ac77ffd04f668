package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/brainarcade/internal/problemgen"
)

// BlobStore is the byte-level table behind DurableSets, implemented by
// store.QuestionRepo.
type BlobStore interface {
	Get(ctx context.Context, player string, grade int, date string) ([]byte, bool, error)
	Put(ctx context.Context, player string, grade int, date string, payload []byte) error
}

// DurableSets keeps sentence sets as JSON in a BlobStore.
type DurableSets struct {
	blobs BlobStore
}

var _ problemgen.SetCache = (*DurableSets)(nil)

func NewDurableSets(blobs BlobStore) *DurableSets {
	return &DurableSets{blobs: blobs}
}

func (d *DurableSets) Find(ctx context.Context, key problemgen.SetKey) ([]problemgen.Sentence, bool, error) {
	raw, ok, err := d.blobs.Get(ctx, key.Player, key.Grade, key.Date)
	if err != nil || !ok {
		return nil, false, err
	}
	set, err := decodeSet(raw)
	if err != nil {
		return nil, false, err
	}
	return set, len(set) > 0, nil
}

func (d *DurableSets) Store(ctx context.Context, key problemgen.SetKey, set []problemgen.Sentence) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode sentence set: %w", err)
	}
	return d.blobs.Put(ctx, key.Player, key.Grade, key.Date, raw)
}
