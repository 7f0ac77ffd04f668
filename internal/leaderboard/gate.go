package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/brainarcade/internal/logger"
)

// Publisher is told when a subject's board has changed.
type Publisher interface {
	BoardChanged(ctx context.Context, subject Subject, week string)
}

// Gate enforces one finished game per player, grade and subject per day and
// records finished games.
type Gate struct {
	store Store
	agg   Aggregator
	pub   Publisher
	now   func() time.Time
	log   *logger.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

func WithAggregator(a Aggregator) GateOption { return func(g *Gate) { g.agg = a } }
func WithPublisher(p Publisher) GateOption   { return func(g *Gate) { g.pub = p } }
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}
func WithLogger(l *logger.Logger) GateOption { return func(g *Gate) { g.log = l } }

func NewGate(store Store, opts ...GateOption) *Gate {
	g := &Gate{store: store, now: time.Now, log: logger.NewNop()}
	for _, o := range opts {
		o(g)
	}
	if g.agg == nil {
		g.agg = &StoreAggregator{store: store, now: g.now}
	}
	return g
}

// Now returns the gate's current time.
func (g *Gate) Now() time.Time { return g.now() }

// Check returns ErrAlreadyPlayed if the player finished a game today. A
// store failure is treated as not played.
func (g *Gate) Check(ctx context.Context, p Player) error {
	now := g.now()
	rec, err := g.store.Find(ctx, p.Key(WeekOf(now)))
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		g.log.Warn("daily lock lookup failed", "player", p.Name, "subject", p.Subject, "error", err)
		return nil
	}
	if rec.LastPlayed == LocalDate(now) {
		return ErrAlreadyPlayed
	}
	return nil
}

// Finalize re-checks the lock, records d and refreshes the board. If the
// player already finished today the session is discarded and
// ErrAlreadyPlayed is returned. A refresh failure after a successful write
// returns the partial board along with the error.
func (g *Gate) Finalize(ctx context.Context, p Player, d Delta) (Board, error) {
	now := g.now()
	today, week := LocalDate(now), WeekOf(now)

	if err := g.Check(ctx, p); err != nil {
		return Board{}, err
	}
	if err := g.agg.Apply(ctx, p.Key(week), d, today); err != nil {
		if errors.Is(err, ErrAlreadyPlayed) {
			return Board{}, ErrAlreadyPlayed
		}
		return Board{}, fmt.Errorf("record session: %w", err)
	}
	g.log.Info("session recorded", "player", p.Name, "grade", p.Grade, "subject", p.Subject,
		"week", week, "score", d.Score, "correct", d.Correct, "attempted", d.Attempted)

	if g.pub != nil {
		g.pub.BoardChanged(ctx, p.Subject, week)
	}
	return g.Board(ctx, p.Subject, week)
}

// Board loads the read views for a subject and week.
func (g *Gate) Board(ctx context.Context, subject Subject, week string) (Board, error) {
	b := Board{Subject: subject, Week: week}

	leaders, err := g.store.List(ctx, subject, week, LeaderLimit)
	if err != nil {
		return b, fmt.Errorf("list leaders: %w", err)
	}
	b.Leaders = leaders
	b.Champions = champions(leaders)

	names, err := g.store.ListNames(ctx, subject, week, PlayerLimit)
	if err != nil {
		return b, fmt.Errorf("list players: %w", err)
	}
	b.Players = names
	return b, nil
}

// CurrentBoard loads the board for this week.
func (g *Gate) CurrentBoard(ctx context.Context, subject Subject) (Board, error) {
	return g.Board(ctx, subject, WeekOf(g.now()))
}

// Overall returns the all-time top records across subjects.
func (g *Gate) Overall(ctx context.Context) ([]Record, error) {
	recs, err := g.store.ListAll(ctx, OverallLimit)
	if err != nil {
		return nil, fmt.Errorf("list overall: %w", err)
	}
	return recs, nil
}
