package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BioHazard786/warpline/internal/config"
	"github.com/BioHazard786/warpline/internal/signaling"
)

const shutdownGrace = 5 * time.Second

// Server owns the hub and the HTTP listener for one run.
type Server struct {
	cfg  *config.Server
	hub  *signaling.Hub
	http *http.Server
}

// New builds a Server from cfg.
func New(cfg *config.Server) *Server {
	hub := signaling.NewHub(cfg.IdleTimeout)
	return &Server{
		cfg: cfg,
		hub: hub,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewMux(hub, cfg.MaxMessageSize),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Hub returns the server's hub.
func (s *Server) Hub() *signaling.Hub {
	return s.hub
}

// Run listens on the configured port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the hub and accepts connections on ln until ctx is cancelled,
// then shuts the listener down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.hub.Run(ctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("signaling server listening", "addr", ln.Addr().String(), "idle_timeout", s.hub.IdleTimeout())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
