package live

import (
	"errors"
	"net/http"
	"time"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig wires the HTTP server.
type RouterConfig struct {
	Boards         Boards
	Hub            *Hub
	AllowedOrigins []string
	Logger         *logger.Logger
}

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// NewRouter builds the gin engine with the read API and the WebSocket
// endpoint.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	h := &handlers{boards: cfg.Boards, log: log, ws: newWSHandler(cfg.Hub, cfg.Boards, cfg.AllowedOrigins, log)}

	router := gin.New()
	router.Use(gin.Recovery(), requestLog(log))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", h.health)
	api := router.Group("/api")
	{
		api.GET("/leaderboard/:subject", h.leaderboard)
		api.GET("/players/:subject", h.players)
		api.GET("/overall", h.overall)
	}
	router.GET("/ws/leaderboard/:subject", h.ws.serve)
	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func requestLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request", "method", c.Request.Method, "path", c.FullPath(),
			"status", c.Writer.Status(), "duration_ms", time.Since(start).Milliseconds())
	}
}

type handlers struct {
	boards Boards
	log    *logger.Logger
	ws     *wsHandler
}

func (h *handlers) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// subjectParam parses :subject, writing a 400 on failure.
func subjectParam(c *gin.Context) (leaderboard.Subject, bool) {
	s, err := leaderboard.ParseSubject(c.Param("subject"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "unknown_subject", err)
		return "", false
	}
	return s, true
}

func (h *handlers) board(c *gin.Context) (leaderboard.Board, bool) {
	subject, ok := subjectParam(c)
	if !ok {
		return leaderboard.Board{}, false
	}
	var (
		board leaderboard.Board
		err   error
	)
	if week := c.Query("week"); week != "" {
		if _, perr := time.ParseInLocation("2006-01-02", week, time.Local); perr != nil {
			respondError(c, http.StatusBadRequest, "invalid_week", errors.New("week must be YYYY-MM-DD"))
			return leaderboard.Board{}, false
		}
		board, err = h.boards.Board(c.Request.Context(), subject, week)
	} else {
		board, err = h.boards.CurrentBoard(c.Request.Context(), subject)
	}
	if err != nil {
		h.log.Error("load board", "subject", subject, "error", err)
		respondError(c, http.StatusInternalServerError, "board_unavailable", err)
		return leaderboard.Board{}, false
	}
	return board, true
}

type boardResponse struct {
	Subject   leaderboard.Subject  `json:"subject"`
	Week      string               `json:"week"`
	Leaders   []leaderboard.Record `json:"leaders"`
	Champions []leaderboard.Record `json:"champions"`
}

func (h *handlers) leaderboard(c *gin.Context) {
	board, ok := h.board(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, boardResponse{
		Subject:   board.Subject,
		Week:      board.Week,
		Leaders:   nonNil(board.Leaders),
		Champions: nonNil(board.Champions),
	})
}

func (h *handlers) players(c *gin.Context) {
	board, ok := h.board(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"subject": board.Subject, "week": board.Week, "players": nonNil(board.Players)})
}

func (h *handlers) overall(c *gin.Context) {
	recs, err := h.boards.Overall(c.Request.Context())
	if err != nil {
		h.log.Error("load overall", "error", err)
		respondError(c, http.StatusInternalServerError, "board_unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaders": nonNil(recs)})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
