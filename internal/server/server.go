package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskhub/taskhub-server/internal/model"
)

var _ model.Server = (*HTTPServer)(nil)

// HTTPServer wraps net/http with listener injection and graceful
// shutdown.
type HTTPServer struct {
	server *http.Server
	addr   string
}

// NewHTTPServer creates a server for the given handler and address.
func NewHTTPServer(handler http.Handler, addr string) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{Handler: handler},
		addr:   addr,
	}
}

// Start opens a listener through the security layer and serves until
// Stop is called. A regular shutdown returns nil.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
