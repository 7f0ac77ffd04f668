// Package cache keeps each player's daily English sentence set so a replay
// on the same day sees the same questions without another generation call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/redis/go-redis/v9"
)

// RedisSets stores sentence sets in one Redis hash per day:
//
//	HSET {prefix}:{date} {player}|{grade} <json>
//
// The hash expires after the TTL plus up to 10% jitter.
type RedisSets struct {
	client *redis.Client
	prefix string
	ttl    time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

var _ problemgen.SetCache = (*RedisSets)(nil)

func NewRedisSets(client *redis.Client, prefix string, ttl time.Duration) *RedisSets {
	if prefix == "" {
		prefix = "arcade:questions"
	}
	return &RedisSets{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RedisSets) Find(ctx context.Context, key problemgen.SetKey) ([]problemgen.Sentence, bool, error) {
	raw, err := r.client.HGet(ctx, r.hashKey(key.Date), field(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis hget: %w", err)
	}
	set, err := decodeSet(raw)
	if err != nil {
		return nil, false, err
	}
	return set, len(set) > 0, nil
}

func (r *RedisSets) Store(ctx context.Context, key problemgen.SetKey, set []problemgen.Sentence) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode sentence set: %w", err)
	}

	hash := r.hashKey(key.Date)
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, hash, field(key), raw)
	if ttl := r.ttlWithJitter(); ttl > 0 {
		pipe.Expire(ctx, hash, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	return nil
}

func (r *RedisSets) hashKey(date string) string {
	return r.prefix + ":" + date
}

func field(key problemgen.SetKey) string {
	return fmt.Sprintf("%s|%d", key.Player, key.Grade)
}

func (r *RedisSets) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func decodeSet(raw []byte) ([]problemgen.Sentence, error) {
	var set []problemgen.Sentence
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("decode sentence set: %w", err)
	}
	return set, nil
}
