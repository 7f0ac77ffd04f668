package problemgen

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Generator produces questions for one subject.
type Generator interface {
	// Generate produces a single question for the given input.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// SentenceSource produces a set of English sentences for a player's day.
type SentenceSource interface {
	Sentences(ctx context.Context, req SentenceRequest) ([]Sentence, error)
}

// Rand is a goroutine-safe random source shared by the local generators.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a Rand seeded from the clock.
func NewRand() *Rand {
	now := uint64(time.Now().UnixNano())
	return NewSeededRand(now, now>>17)
}

// NewSeededRand returns a deterministic Rand for tests and previews.
func NewSeededRand(seed1, seed2 uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// Int returns a uniform integer in [lo, hi].
func (r *Rand) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.r.IntN(hi-lo+1)
}

// Pick returns a random element of items.
func Pick[T any](r *Rand, items []T) T {
	return items[r.Int(0, len(items)-1)]
}

// Shuffle permutes items in place.
func Shuffle[T any](r *Rand, items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

// shuffled returns a permuted copy of steps that differs from the original
// order whenever the steps are not all identical.
func shuffled(r *Rand, steps []string) []string {
	out := append([]string(nil), steps...)
	if !hasDistinct(steps) {
		return out
	}
	for range 20 {
		Shuffle(r, out)
		if !CheckOrder(out, steps) {
			return out
		}
	}
	// Rotate as a last resort.
	return append(out[1:], out[0])
}

func hasDistinct(items []string) bool {
	for _, s := range items[min(1, len(items)):] {
		if s != items[0] {
			return true
		}
	}
	return false
}
