package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mcoot/ricotte-api/internal/config"
)

// Server runs the gateway's HTTP listener until its context ends
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// NewServer binds the router to the host, port and connection timeouts in cfg
func NewServer(router http.Handler, cfg config.Config, logger *slog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger.With(slog.String("component", "http-server")),
	}
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests for at most the shutdown timeout (zero waits for all).
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("ricotte gateway listening", slog.String("addr", ln.Addr().String()))

	served := make(chan error, 1)
	go func() {
		served <- s.http.Serve(ln)
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("draining in-flight requests", slog.Duration("timeout", s.shutdownTimeout))

	drainCtx := context.WithoutCancel(ctx)
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		drainCtx, cancel = context.WithTimeout(drainCtx, s.shutdownTimeout)
		defer cancel()
	}
	if err := s.http.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-served

	s.logger.Info("ricotte gateway stopped")
	return nil
}
