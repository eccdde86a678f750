// Package server hosts the docsight HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/docsight/docsight/internal/api"
	"github.com/docsight/docsight/internal/config"
	"github.com/docsight/docsight/internal/extraction"
	"github.com/docsight/docsight/internal/grounding"
	"github.com/docsight/docsight/internal/ocrclient"
	"github.com/docsight/docsight/internal/pagestore"
	"github.com/docsight/docsight/internal/providers"
	"github.com/docsight/docsight/internal/server/endpoints"
	"github.com/docsight/docsight/internal/svcctx"
)

// Server is the main docsight HTTP server.
type Server struct {
	httpServer *http.Server
	store      *pagestore.Store
	configMgr  *config.Manager
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8417)
	Port int
	// Store is the page artifact store
	Store *pagestore.Store
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8417
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Store == nil {
		return nil, errors.New("page store is required")
	}
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}

	s := &Server{
		store:     cfg.Store,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	s.rebuild(cfg.ConfigManager.Get())

	// Rebuild the provider stack when config changes
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		s.rebuild(c)
		s.logger.Info("extraction provider reloaded from config")
	})

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // Extraction runs can be slow
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// rebuild constructs the provider, extraction runner, and grounding finder
// from the given configuration. Handlers in flight keep the snapshot they
// started with; new requests see the fresh services.
func (s *Server) rebuild(c *config.Config) {
	provider := buildProvider(c)

	runner := extraction.NewRunner(provider, extraction.RunnerConfig{
		MaxConcurrent: c.Extraction.MaxConcurrent,
		MaxRetries:    c.Extraction.MaxRetries,
		RetryDelay:    c.Extraction.RetryDelay(),
	}, s.logger)

	var fetcher grounding.PageFetcher = s.store
	if c.Grounding.OCRServerURL != "" {
		fetcher = ocrclient.New(c.Grounding.OCRServerURL)
	}
	grounder := grounding.NewFinder(fetcher, s.logger)

	services := &svcctx.Services{
		Logger:    s.logger,
		Config:    s.configMgr,
		Store:     s.store,
		Provider:  provider,
		Extractor: runner,
		Grounder:  grounder,
	}

	s.mu.Lock()
	s.services = services
	s.mu.Unlock()
}

// buildProvider creates the extraction client named in config.
func buildProvider(c *config.Config) providers.Client {
	switch c.Extraction.Provider {
	case providers.MockClientName:
		return providers.NewMockClient(`{"value": "", "confidence": "Low"}`)
	default:
		return providers.NewOpenAIClient(providers.OpenAIConfig{
			APIKey:      config.ResolveEnvVars(c.Extraction.APIKey),
			Model:       c.Extraction.Model,
			Temperature: c.Extraction.Temperature,
		})
	}
}

// Start starts the server. It blocks until the context is cancelled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.store.EnsureExists(); err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to prepare home directory: %w", err)
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the root HTTP handler (tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		services := s.services
		s.mu.RUnlock()

		ctx := svcctx.WithServices(r.Context(), services)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if the store or provider aren't ready.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		ready := s.services != nil && s.services.Store != nil && s.services.Provider != nil
		s.mu.RUnlock()

		if !ready {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
