// Package live serves the leaderboard over HTTP and pushes board updates
// to WebSocket clients, optionally fanned out through Redis pub/sub.
package live

import (
	"context"
	"sync"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/google/uuid"
)

// Boards is the read side the server needs. *leaderboard.Gate satisfies it.
type Boards interface {
	Board(ctx context.Context, subject leaderboard.Subject, week string) (leaderboard.Board, error)
	CurrentBoard(ctx context.Context, subject leaderboard.Subject) (leaderboard.Board, error)
	Overall(ctx context.Context) ([]leaderboard.Record, error)
}

// Message is the envelope written to WebSocket clients.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

const outboundBuffer = 16

// Client is one subscriber to a subject's board.
type Client struct {
	ID       uuid.UUID
	Subject  leaderboard.Subject
	Outbound chan Message
}

// Hub tracks WebSocket clients per subject.
type Hub struct {
	mu     sync.RWMutex
	boards Boards
	log    *logger.Logger
	subs   map[leaderboard.Subject]map[*Client]struct{}
}

func NewHub(boards Boards, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.NewNop()
	}
	return &Hub{
		boards: boards,
		log:    log.With("component", "hub"),
		subs:   make(map[leaderboard.Subject]map[*Client]struct{}),
	}
}

// Subscribe registers a new client for subject.
func (h *Hub) Subscribe(subject leaderboard.Subject) *Client {
	c := &Client{ID: uuid.New(), Subject: subject, Outbound: make(chan Message, outboundBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.subs[subject]
	if !ok {
		clients = make(map[*Client]struct{})
		h.subs[subject] = clients
	}
	clients[c] = struct{}{}
	h.log.Debug("client subscribed", "client", c.ID, "subject", subject)
	return c
}

// Unsubscribe removes c and closes its outbound channel.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.subs[c.Subject]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.subs, c.Subject)
	}
	close(c.Outbound)
	h.log.Debug("client unsubscribed", "client", c.ID, "subject", c.Subject)
}

// Clients returns the number of subscribers for subject.
func (h *Hub) Clients(subject leaderboard.Subject) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[subject])
}

// Broadcast sends msg to every subscriber of subject. Slow clients drop
// the message.
func (h *Hub) Broadcast(subject leaderboard.Subject, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.subs[subject] {
		select {
		case c.Outbound <- msg:
		default:
			h.log.Warn("dropping board update, outbound buffer full", "client", c.ID)
		}
	}
}

// Refresh reloads subject's board for week and broadcasts it.
func (h *Hub) Refresh(ctx context.Context, subject leaderboard.Subject, week string) {
	if h.Clients(subject) == 0 {
		return
	}
	board, err := h.boards.Board(ctx, subject, week)
	if err != nil {
		h.log.Warn("refresh board", "subject", subject, "week", week, "error", err)
		return
	}
	h.Broadcast(subject, Message{Type: "board", Payload: board})
}
