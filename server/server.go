// Package server exposes the tokenizer pipeline over HTTP and WebSocket,
// adapted from the teacher's internal/web/server chi+net/http pattern.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hagstofa/toknun/config"
	"github.com/hagstofa/toknun/logging"
)

// Server wraps an *http.Server the way the teacher's server.Server does:
// production timeouts set up front, ListenAndServe/Shutdown as the
// lifecycle API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a Server from a router.Routes handler and cfg's host/port.
func New(cfg config.ServerConfig, handler http.Handler, logger *zap.Logger) *Server {
	logger = logging.Safe(logger)
	addr := cfg.Host + ":" + strconv.Itoa(cfg.Port)
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		logger: logger,
	}
}

// ListenAndServe starts the server and blocks until it exits.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
