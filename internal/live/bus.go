package live

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis channel board events are published on.
const DefaultChannel = "arcade:leaderboard"

// BoardChanged is published after a game is recorded.
type BoardChanged struct {
	Subject leaderboard.Subject `json:"subject"`
	Week    string              `json:"week"`
}

// Bus carries BoardChanged events between processes over Redis pub/sub.
type Bus struct {
	rdb     redis.UniversalClient
	channel string
	log     *logger.Logger
}

func NewBus(rdb redis.UniversalClient, channel string, log *logger.Logger) *Bus {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Bus{rdb: rdb, channel: channel, log: log.With("component", "bus")}
}

func (b *Bus) Publish(ctx context.Context, ev BoardChanged) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// Forward subscribes to the channel and calls onEvent for each event until
// ctx is cancelled. It returns once the subscription is confirmed.
func (b *Bus) Forward(ctx context.Context, onEvent func(BoardChanged)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var ev BoardChanged
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					b.log.Warn("bad board event payload", "error", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()
	return nil
}
