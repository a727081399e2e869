// Package http serves the crime dashboard: the embedded single-page UI,
// the JSON API behind it, and the operational endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quarterlight/crimescope/internal/aggregate"
	"github.com/quarterlight/crimescope/internal/dataset"
	"github.com/quarterlight/crimescope/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard page, its JSON API, and the health, readiness,
// and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics

	store *dataset.Store
	agg   *aggregate.Aggregates
}

// NewServer creates the dashboard HTTP server on top of a loaded dataset and
// its precomputed aggregates.
func NewServer(addr string, store *dataset.Store, agg *aggregate.Aggregates, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      WithRequestID(WithLogging(logger, mux)),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
		store:   store,
		agg:     agg,
	}

	mux.Handle("GET /{$}", s.instrument("/", http.HandlerFunc(s.handleIndex)))
	mux.Handle("GET /api/meta", s.instrument("/api/meta", http.HandlerFunc(s.handleMeta)))
	mux.Handle("GET /api/map", s.instrument("/api/map", http.HandlerFunc(s.handleMap)))
	mux.Handle("GET /api/city/series", s.instrument("/api/city/series", http.HandlerFunc(s.handleCitySeries)))
	mux.Handle("GET /api/city/table", s.instrument("/api/city/table", http.HandlerFunc(s.handleCityTable)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(store))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(dashboardHTML) //nolint:errcheck // static page, nothing to recover
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
