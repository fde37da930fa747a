// Package http provides HTTP handlers and middleware for the menu API.
// It includes handlers for cached menus, source management, orchestrator
// statistics, and health check endpoints.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"lunch-radar/internal/handler/http/respond"
	"lunch-radar/internal/orchestrator"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// StatsProvider exposes orchestrator statistics to handlers.
type StatsProvider interface {
	Stats() orchestrator.Stats
}

// HealthHandler handles health check endpoint requests. It checks
// database connectivity when a DB is configured and reports per-source
// health from the orchestrator.
type HealthHandler struct {
	DB      *sql.DB
	Orch    StatsProvider
	Version string
}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	healthy := true

	if h.DB != nil {
		checks["database"] = h.checkDatabase(r.Context())
		if checks["database"].Status != "healthy" {
			healthy = false
		}
	}

	if h.Orch != nil {
		sourceCheck := h.checkSources()
		checks["sources"] = sourceCheck
		// Unhealthy sources degrade the report but do not fail the probe;
		// the service itself is still serving cached menus.
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: "database ping failed"}
	}
	return CheckStatus{Status: "healthy"}
}

func (h HealthHandler) checkSources() CheckStatus {
	stats := h.Orch.Stats()

	unhealthy := 0
	open := 0
	for _, src := range stats.Sources {
		if !src.Health.Healthy {
			unhealthy++
		}
		if src.Breaker.State == orchestrator.StateOpen {
			open++
		}
	}

	status := "healthy"
	if unhealthy > 0 {
		status = "degraded"
	}
	return CheckStatus{
		Status: status,
		Details: map[string]interface{}{
			"total":         stats.TotalParsers,
			"active":        stats.ActiveParsers,
			"unhealthy":     unhealthy,
			"open_breakers": open,
		},
	}
}
