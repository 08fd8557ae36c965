package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"spendwatch-hq/spendwatch/pkg/config"
	"spendwatch-hq/spendwatch/pkg/limits"
	"spendwatch-hq/spendwatch/pkg/limits/provider"
	"spendwatch-hq/spendwatch/pkg/limits/storage"
	"spendwatch-hq/spendwatch/pkg/server/handlers"
	"spendwatch-hq/spendwatch/pkg/server/middleware"
)

// Deps carries the server's collaborators.
type Deps struct {
	// Orchestrator produces limit-status snapshots.
	Orchestrator *provider.Orchestrator

	// Backend is the account state store.
	Backend storage.Backend

	// Metrics exposes the Prometheus endpoint. May be nil.
	Metrics *limits.Metrics

	// MetricsPath is the metrics endpoint path. Empty disables the endpoint.
	MetricsPath string
}

// Server is the HTTP status API server.
type Server struct {
	config       *config.ServerConfig
	deps         Deps
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a new status API server.
func New(cfg *config.ServerConfig, deps Deps) *Server {
	return &Server{
		config:       cfg,
		deps:         deps,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting status server", "address", s.config.ListenAddress)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("status server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	statusHandler := handlers.NewStatusHandler(s.deps.Orchestrator)
	accountsHandler := handlers.NewAccountsHandler(s.deps.Backend)
	healthHandler := handlers.NewHealthHandler()
	readyHandler := handlers.NewReadyHandler(handlers.CheckerFunc(s.checkStorage))

	mux.Handle("GET /v1/accounts/{account}/limit-status", statusHandler)
	mux.HandleFunc("GET /v1/accounts", accountsHandler.List)
	mux.HandleFunc("PUT /v1/accounts/{account}", accountsHandler.Create)
	mux.HandleFunc("POST /v1/accounts/{account}/spend", accountsHandler.Spend)
	mux.Handle("GET /health", healthHandler)
	mux.Handle("GET /ready", readyHandler)

	if s.deps.Metrics != nil && s.deps.MetricsPath != "" {
		mux.Handle("GET "+s.deps.MetricsPath, s.deps.Metrics.Handler())
	}

	// Apply middleware chain
	var handler http.Handler = mux
	handler = middleware.TimeoutMiddleware(s.config.WriteTimeout)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// checkStorage is the readiness probe for the storage backend.
func (s *Server) checkStorage(ctx context.Context) error {
	if s.deps.Backend == nil {
		return fmt.Errorf("storage backend not configured")
	}
	if _, err := s.deps.Backend.ListAccounts(ctx); err != nil {
		return fmt.Errorf("storage backend unavailable: %w", err)
	}
	return nil
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
