// Package server provides the HTTP server lifecycle for a planner.
package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/studyplanner/planner/internal/api"
	"github.com/studyplanner/planner/internal/app"
)

const (
	// DefaultAddress is the default address the server listens on.
	DefaultAddress = "localhost:7480"
	// DefaultShutdownTimeout is the default timeout for graceful shutdown.
	DefaultShutdownTimeout = 30 * time.Second
)

// Server manages the HTTP server lifecycle.
type Server struct {
	httpServer *http.Server
	app        *app.App
	logger     *log.Logger
	listener   net.Listener
	mu         sync.Mutex
	started    bool
}

// New creates a new Server for an opened planner.
// If addr is empty, DefaultAddress will be used.
func New(addr string, a *app.App) *Server {
	if addr == "" {
		addr = DefaultAddress
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      api.NewRouter(a),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		app:    a,
		logger: a.Logger,
	}
}

// Start starts the HTTP server and blocks until the server is shut down.
// It returns http.ErrServerClosed when the server is gracefully shut down.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	// Create listener first so we know the actual address (for port 0 case)
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.listener = ln
	s.started = true
	s.mu.Unlock()

	s.logger.Printf("Serving planner %q on %s", s.app.Config.Planner, ln.Addr().String())

	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server without interrupting active
// connections, then stops reminders and closes the planner.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.logger.Println("Shutting down server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	if err := s.app.Close(); err != nil {
		s.logger.Printf("Warning: error closing planner: %v", err)
	}

	s.logger.Println("Server stopped")
	return nil
}

// Addr returns the address the server is listening on.
// Returns empty string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// ListenAndServe starts the server and shuts it down gracefully on SIGINT
// or SIGTERM.
func (s *Server) ListenAndServe() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.logger.Printf("Received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	return s.Shutdown(ctx)
}
