package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
//
// The endpoint paths are a compatibility contract with deployed sensor
// firmware and dashboards, which is why they sit at the root and keep
// their original Portuguese names.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Health check (no auth required)
	r.Get("/health", s.handleHealth)

	// Account endpoints (no auth required)
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	// Ingestion is unauthenticated: sensors push readings without accounts.
	r.Post("/dados-sensores", s.handleIngestReading)

	// Real-time channel
	r.Get("/ws", s.handleWebSocket)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/dados-sensores", s.handleListReadings)
		r.Put("/controle-ar/{sensor_id}", s.handleSetActuator)
		r.Delete("/limpar-dados", s.handleClearReadings)
	})

	return r
}

// healthCheckTimeout bounds the database probe in the health endpoint.
const healthCheckTimeout = 2 * time.Second

// handleHealth returns the server health status, including a database probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := s.db.HealthCheck(ctx); err != nil {
			status = "degraded"
			dbStatus = "unavailable"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      status,
		"version":     s.version,
		"database":    dbStatus,
		"subscribers": s.Hub().ClientCount(),
	})
}
