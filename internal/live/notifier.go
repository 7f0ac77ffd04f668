package live

import (
	"context"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
)

// Notifier is the leaderboard.Publisher handed to the gate. With a bus it
// publishes to Redis; without one it refreshes the local hub directly.
type Notifier struct {
	bus *Bus
	hub *Hub
	log *logger.Logger
}

var _ leaderboard.Publisher = (*Notifier)(nil)

// NewNotifier accepts a nil bus or hub.
func NewNotifier(bus *Bus, hub *Hub, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Notifier{bus: bus, hub: hub, log: log}
}

func (n *Notifier) BoardChanged(ctx context.Context, subject leaderboard.Subject, week string) {
	if n.bus != nil {
		if err := n.bus.Publish(ctx, BoardChanged{Subject: subject, Week: week}); err != nil {
			n.log.Warn("publish board change", "subject", subject, "error", err)
		} else {
			return
		}
	}
	if n.hub != nil {
		n.hub.Refresh(ctx, subject, week)
	}
}
