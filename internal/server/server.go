package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/mux"
)

// Server serves the static app and the health endpoint from a single root
// directory.
type Server struct {
	root     string
	logger   *slog.Logger
	listener net.Listener
	server   *http.Server
}

// New creates a server for the files under root. A nil logger uses the
// default slog logger.
func New(root string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		root:   root,
		logger: logger.With("component", "server"),
	}
	s.server = &http.Server{Handler: s.Router()}
	return s
}

// Router returns the HTTP handler for all routes, wrapped in request logging.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	// The static handler validates raw paths itself; cleaning would turn
	// traversal attempts into redirects.
	r.SkipClean(true)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/{path:.+}", s.serveStatic).Methods(http.MethodGet, http.MethodHead)

	return s.logRequests(r)
}

// Listen binds the TCP listener. Bind failures are returned as is so the
// caller can exit.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", addr, err)
	}
	s.listener = ln
	s.logger.Info("listening", "addr", ln.Addr().String(), "root", s.root)
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections on the bound listener until Shutdown.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe binds addr and serves until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	if err := s.Listen(addr); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
