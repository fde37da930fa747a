// The worker crawls every registered lunch menu source on a cron schedule
// and caches the extracted weekly menus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"lunch-radar/internal/config"
	"lunch-radar/internal/infra/cache"
	"lunch-radar/internal/infra/db"
	"lunch-radar/internal/infra/fetcher"
	workerPkg "lunch-radar/internal/infra/worker"
	"lunch-radar/internal/observability/logging"
	"lunch-radar/internal/orchestrator"
	crawlUC "lunch-radar/internal/usecase/crawl"
	pkgconfig "lunch-radar/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := workerPkg.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("crawl_timeout", cfg.CrawlTimeout),
		slog.Int("max_concurrency", cfg.MaxConcurrency),
		slog.String("sources_file", cfg.SourcesFile))

	sources, err := config.LoadSources(cfg.SourcesFile)
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
	logger.Info("sources registered", slog.Int("count", len(sources)))

	menuCache := buildCache(logger)

	crawlService := crawlUC.NewService(orch, menuCache, orchestrator.ExecuteOptions{
		MaxConcurrency:  cfg.MaxConcurrency,
		ContinueOnError: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	startMetricsServer(ctx, logger)

	runCrawl := func() {
		crawlCtx, cancel := context.WithTimeout(ctx, cfg.CrawlTimeout)
		defer cancel()

		summary, err := crawlService.CrawlAll(crawlCtx)
		healthServer.RecordRun(err)
		if err != nil {
			logger.Error("batch crawl failed", slog.Any("error", err))
			return
		}
		logger.Info("batch crawl summary",
			slog.Int("sources", summary.Parsing.Total),
			slog.Int("successful", summary.Parsing.Successful),
			slog.Int("offerings_cached", summary.Offerings.Cached))
	}

	// Crawl once on startup so a fresh deployment has menus before the
	// first scheduled run.
	runCrawl()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("failed to load timezone", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddFunc(cfg.CronSchedule, runCrawl); err != nil {
		logger.Error("failed to schedule crawl", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("crawl scheduler started", slog.String("schedule", cfg.CronSchedule))

	<-ctx.Done()
	logger.Info("shutting down")
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()
}

// newFetcher builds the document fetcher. DENY_PRIVATE_IPS=false disables
// the private address guard for local development.
func newFetcher() *fetcher.HTTPDocumentFetcher {
	if !pkgconfig.GetEnvBool("DENY_PRIVATE_IPS", true) {
		return fetcher.New(nil)
	}
	return fetcher.New(nil, fetcher.WithPrivateIPGuard())
}

// buildCache selects the menu cache backend: Postgres when DATABASE_URL is
// set, in-memory otherwise.
func buildCache(logger *slog.Logger) cache.MenuCache {
	if os.Getenv("DATABASE_URL") == "" {
		logger.Info("DATABASE_URL not set, using in-memory menu cache")
		return cache.NewInMemoryMenuCache(cache.InMemoryConfig{})
	}

	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("using postgres menu cache")
	return cache.WithRetry(cache.NewPostgresMenuCache(database, cache.DefaultTTL))
}

// startMetricsServer exposes Prometheus metrics on METRICS_PORT.
func startMetricsServer(ctx context.Context, logger *slog.Logger) {
	port := pkgconfig.GetEnvInt("METRICS_PORT", 9090)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("metrics server listening", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()
}
