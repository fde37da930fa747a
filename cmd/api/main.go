// The api server exposes cached weekly menus, the source registry, and
// on-demand crawling over HTTP.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lunch-radar/internal/config"
	hhttp "lunch-radar/internal/handler/http"
	menuHandler "lunch-radar/internal/handler/http/menu"
	sourceHandler "lunch-radar/internal/handler/http/source"
	"lunch-radar/internal/infra/cache"
	"lunch-radar/internal/infra/db"
	"lunch-radar/internal/infra/fetcher"
	"lunch-radar/internal/observability/logging"
	"lunch-radar/internal/orchestrator"
	pkgconfig "lunch-radar/pkg/config"
)

var version = "dev"

// newFetcher builds the document fetcher. DENY_PRIVATE_IPS=false disables
// the private address guard for local development.
func newFetcher() *fetcher.HTTPDocumentFetcher {
	if !pkgconfig.GetEnvBool("DENY_PRIVATE_IPS", true) {
		return fetcher.New(nil)
	}
	return fetcher.New(nil, fetcher.WithPrivateIPGuard())
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	sourcesFile := pkgconfig.GetEnvString("SOURCES_FILE", "sources.yaml")
	sources, err := config.LoadSources(sourcesFile)
	if err != nil {
		logger.Error("failed to load sources", slog.Any("error", err))
		os.Exit(1)
	}

	orch := orchestrator.New(newFetcher())
	for _, d := range sources {
		if err := orch.Register(d); err != nil {
			logger.Error("failed to register source",
				slog.String("source", d.ID),
				slog.Any("error", err))
			os.Exit(1)
		}
	}

	var database *sql.DB
	var menuCache cache.MenuCache
	if os.Getenv("DATABASE_URL") != "" {
		database = db.Open()
		if err := db.MigrateUp(database); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		menuCache = cache.WithRetry(cache.NewPostgresMenuCache(database, cache.DefaultTTL))
	} else {
		logger.Info("DATABASE_URL not set, using in-memory menu cache")
		menuCache = cache.NewInMemoryMenuCache(cache.InMemoryConfig{})
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", hhttp.HealthHandler{DB: database, Orch: orch, Version: version})
	mux.Handle("GET /stats", hhttp.StatsHandler{Orch: orch})
	mux.Handle("GET /metrics", promhttp.Handler())
	sourceHandler.Register(mux, orch)
	menuHandler.Register(mux, menuCache, orch)

	port := pkgconfig.GetEnvInt("PORT", 8080)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           hhttp.Chain(mux, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api server listening", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if database != nil {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}
