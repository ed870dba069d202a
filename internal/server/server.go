package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server wraps the HTTP listener and its graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewServer binds the handler to host:port.
func NewServer(host string, port int, handler *Handler, logger zerolog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           handler.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger.With().Str("component", "http_server").Logger(),
	}
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string { return s.httpServer.Addr }

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
