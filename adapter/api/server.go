// Package api provides the HTTP API for the booking engine.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fieldflow/bookd/pkg/observability"
)

// Server is the HTTP API server.
type Server struct {
	mux     *http.ServeMux
	server  *http.Server
	logger  *slog.Logger
	handler *BookingHandler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new booking API server.
func NewServer(cfg ServerConfig, handler *BookingHandler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:     mux,
		logger:  logger,
		handler: handler,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      requestContext(s.mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	// Health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Public booking surface, keyed by link slug
	s.mux.HandleFunc("GET /api/v1/links/{slug}", s.handler.GetLink)
	s.mux.HandleFunc("GET /api/v1/links/{slug}/availability", s.handler.GetAvailability)
	s.mux.HandleFunc("POST /api/v1/links/{slug}/bookings", s.handler.CommitBooking)

	// Host management surface, keyed by the X-Owner-ID header
	s.mux.HandleFunc("POST /api/v1/links", s.handler.CreateLink)
	s.mux.HandleFunc("GET /api/v1/links", s.handler.ListLinks)
	s.mux.HandleFunc("PATCH /api/v1/links/id/{linkID}", s.handler.UpdateLink)
	s.mux.HandleFunc("DELETE /api/v1/links/id/{linkID}", s.handler.DeleteLink)
	s.mux.HandleFunc("GET /api/v1/meetings", s.handler.ListMeetings)
	s.mux.HandleFunc("DELETE /api/v1/meetings/{meetingID}", s.handler.CancelMeeting)
}

// requestContext stamps every request with request and correlation IDs.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := observability.NewRequestContext(r.Context(), r.Header.Get("X-Correlation-ID"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting booking API server",
		"addr", s.server.Addr,
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down booking API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
