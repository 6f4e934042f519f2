// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
)

// Server serves /metrics on a dedicated listener.
type Server struct {
	server   *http.Server
	listener net.Listener
	logger   *logger.Logger
}

// NewServer binds address and prepares the exposition endpoint. The
// listener is opened eagerly so that a busy port fails at startup.
func NewServer(m *Metrics, address string, log *logger.Logger) (*Server, error) {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Method(http.MethodGet, "/metrics", m.Handler())

	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("metrics listen on %s: %w", address, err)
	}

	return &Server{
		server: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: ln,
		logger:   log,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Run serves until Shutdown is called.
func (s *Server) Run() {
	s.logger.Info().Str("address", s.Addr()).Msg("metrics server started")
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Err(err).Msg("metrics server stopped")
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
