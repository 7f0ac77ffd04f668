package live

import (
	"net/http"
	"slices"
	"time"

	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type wsHandler struct {
	hub      *Hub
	boards   Boards
	log      *logger.Logger
	upgrader websocket.Upgrader
}

func newWSHandler(hub *Hub, boards Boards, origins []string, log *logger.Logger) *wsHandler {
	return &wsHandler{
		hub:    hub,
		boards: boards,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(origins),
		},
	}
}

// checkOrigin allows same-host requests, requests without an Origin, and
// the configured origins. No configured origins allows everything.
func checkOrigin(origins []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(origins) == 0 || origin == "" {
			return true
		}
		return slices.Contains(origins, origin)
	}
}

// serve upgrades the request, sends the current board and then forwards
// hub updates until the client goes away.
func (h *wsHandler) serve(c *gin.Context) {
	subject, ok := subjectParam(c)
	if !ok {
		return
	}
	board, err := h.boards.CurrentBoard(c.Request.Context(), subject)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "board_unavailable", err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	client := h.hub.Subscribe(subject)
	defer h.hub.Unsubscribe(client)

	// Reader: only pongs and close frames are expected.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.write(conn, Message{Type: "board", Payload: board}); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-readerDone:
			return
		case msg, ok := <-client.Outbound:
			if !ok {
				return
			}
			if err := h.write(conn, msg); err != nil {
				h.log.Debug("ws write failed", "client", client.ID, "error", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *wsHandler) write(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
