package http

import (
	"net/http"

	"lunch-radar/internal/handler/http/respond"
)

// StatsHandler serves the orchestrator's registry, breaker, and health
// statistics.
type StatsHandler struct {
	Orch StatsProvider
}

func (h StatsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.Orch.Stats())
}
