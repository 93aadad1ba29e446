// Package server provides the HTTP API for the sahayak assistant.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/assistant"
	"github.com/hyperjump/sahayak/internal/config"
)

// Server is the HTTP server for the assistant API.
type Server struct {
	assistant *assistant.Assistant
	config    *config.ServerConfig
	logger    *zap.Logger
	gatherer  prometheus.Gatherer
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
// A nil gatherer disables the /metrics endpoint.
func NewServer(
	a *assistant.Assistant,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	gatherer prometheus.Gatherer,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		assistant: a,
		config:    cfg,
		logger:    logger,
		gatherer:  gatherer,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	timeout := time.Duration(s.config.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/respond", s.handleRespond)
		r.Post("/respond/batch", s.handleRespondBatch)
		r.Get("/providers", s.handleProviders)
		r.Get("/providers/{id}", s.handleProviderDetails)
		r.Get("/categories", s.handleCategories)
		r.Get("/lookup", s.handleLookup)
		r.Get("/status", s.handleStatus)
	})
	r.Get("/health", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
