package live

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/gin-gonic/gin"
)

// Server runs the gin engine and, when a bus is set, forwards Redis board
// events into the hub.
type Server struct {
	addr   string
	engine *gin.Engine
	hub    *Hub
	bus    *Bus
	log    *logger.Logger
}

func NewServer(addr string, engine *gin.Engine, hub *Hub, bus *Bus, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{addr: addr, engine: engine, hub: hub, bus: bus, log: log}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.bus != nil {
		err := s.bus.Forward(ctx, func(ev BoardChanged) {
			s.hub.Refresh(ctx, ev.Subject, ev.Week)
		})
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
