package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server wraps http.Server with timeouts and graceful shutdown. Both the
// orders API and the bot interactions endpoint run on one of these.
type Server struct {
	name       string
	httpServer *http.Server
	logger     *zap.Logger
}

func New(name string, port int, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		name: name,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("name", s.name), zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server failed: %w", s.name, err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server", zap.String("name", s.name))
	return s.httpServer.Shutdown(ctx)
}
