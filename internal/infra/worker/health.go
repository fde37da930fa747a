package worker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"lunch-radar/internal/handler/http/respond"
)

// CrawlStatus is the worker's record of its most recent batch crawl.
type CrawlStatus struct {
	LastRun       time.Time `json:"last_run,omitzero"`
	LastSuccess   time.Time `json:"last_success,omitzero"`
	LastError     string    `json:"last_error,omitempty"`
	RunsTotal     int       `json:"runs_total"`
	FailuresTotal int       `json:"failures_total"`
}

// HealthServer serves the worker's liveness endpoint with crawl status.
type HealthServer struct {
	addr   string
	logger *slog.Logger

	mu     sync.Mutex
	status CrawlStatus

	server *http.Server
}

// NewHealthServer creates the health server listening on addr.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	return &HealthServer{addr: addr, logger: logger}
}

// RecordRun updates the crawl status after a batch run.
func (h *HealthServer) RecordRun(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	h.status.LastRun = now
	h.status.RunsTotal++
	if err != nil {
		h.status.FailuresTotal++
		h.status.LastError = err.Error()
		return
	}
	h.status.LastSuccess = now
	h.status.LastError = ""
}

// Start runs the health server until the context is cancelled.
func (h *HealthServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		h.mu.Lock()
		status := h.status
		h.mu.Unlock()

		respond.JSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"crawl":  status,
		})
	})

	h.server = &http.Server{
		Addr:              h.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
		}
	}()

	h.logger.Info("health server listening", slog.String("addr", h.addr))
	if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}
