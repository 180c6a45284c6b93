package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/bootstrap"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/config"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	store, database, err := bootstrap.SetupStore(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup store: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, store, database, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	if cfg.Seed.Enabled {
		bootstrap.SeedDefaultData(context.Background(), deps)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	s := &Server{
		config: cfg,
		router: router,
		deps:   deps,
		logger: lgr,
	}

	return s, nil
}

// Run serves HTTP until SIGINT/SIGTERM or a listener failure, then shuts down.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.http = &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Str("driver", s.config.Database.Driver).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			s.deps.Close()
			return fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains HTTP requests within the configured timeout, then closes
// push connections, NATS, Redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.Duration(s.config.Server.ShutdownTimeout, 10*time.Second))
	defer cancel()

	var shutdownErr error
	if s.http != nil {
		if shutdownErr = s.http.Shutdown(ctx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("HTTP server shutdown error")
		}
	}

	s.deps.Close()
	s.logger.Info().Msg("Server stopped")
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown: %w", shutdownErr)
	}
	return nil
}
