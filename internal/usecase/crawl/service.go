// Package crawl provides the batch crawl use case: run every registered
// menu source through the orchestrator and cache the extracted weekly
// menus.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lunch-radar/internal/infra/cache"
	"lunch-radar/internal/observability/metrics"
	"lunch-radar/internal/orchestrator"
	"lunch-radar/internal/parser"
)

// Executor runs registered sources as a batch. Satisfied by
// *orchestrator.Orchestrator.
type Executor interface {
	ExecuteAll(ctx context.Context, opts orchestrator.ExecuteOptions) ([]parser.ExecutionResult, error)
	Stats() orchestrator.Stats
}

// Service coordinates batch crawling and menu caching.
type Service struct {
	executor Executor
	cache    cache.MenuCache
	opts     orchestrator.ExecuteOptions
	now      func() time.Time
}

// NewService creates a crawl service. A nil cache disables caching; menus
// are still crawled and summarized.
func NewService(executor Executor, menuCache cache.MenuCache, opts orchestrator.ExecuteOptions) *Service {
	return &Service{
		executor: executor,
		cache:    menuCache,
		opts:     opts,
		now:      time.Now,
	}
}

// ParsingSummary aggregates execution outcomes.
type ParsingSummary struct {
	Total       int     `json:"total"`
	Successful  int     `json:"successful"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// OfferingsSummary aggregates extracted records.
type OfferingsSummary struct {
	Total            int     `json:"total"`
	Cached           int     `json:"cached"`
	AveragePerSource float64 `json:"average_per_source"`
}

// CachingSummary aggregates cache write outcomes.
type CachingSummary struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// Summary is the result of one batch crawl.
type Summary struct {
	Parsing   ParsingSummary           `json:"parsing"`
	Offerings OfferingsSummary         `json:"offerings"`
	Caching   CachingSummary           `json:"caching"`
	Duration  time.Duration            `json:"duration"`
	Results   []parser.ExecutionResult `json:"results,omitempty"`
}

// CrawlAll executes every active source and caches successful extractions.
// Individual source failures are reported in the summary, not as errors;
// the returned error is reserved for an aborted batch.
func (s *Service) CrawlAll(ctx context.Context) (*Summary, error) {
	start := s.now()

	results, err := s.executor.ExecuteAll(ctx, s.opts)
	if err != nil {
		return nil, fmt.Errorf("execute batch: %w", err)
	}

	summary := &Summary{Results: results}
	summary.Parsing.Total = len(results)

	for _, result := range results {
		s.recordResult(result, summary)
		if result.Success && len(result.Offerings) > 0 {
			s.cacheResult(ctx, result, summary)
		}
	}

	if summary.Parsing.Total > 0 {
		summary.Parsing.SuccessRate = float64(summary.Parsing.Successful) / float64(summary.Parsing.Total)
		summary.Offerings.AveragePerSource = float64(summary.Offerings.Total) / float64(summary.Parsing.Total)
	}
	summary.Duration = s.now().Sub(start)

	s.publishBreakerStates()

	slog.Info("batch crawl completed",
		slog.Int("sources", summary.Parsing.Total),
		slog.Int("successful", summary.Parsing.Successful),
		slog.Int("failed", summary.Parsing.Failed),
		slog.Int("offerings", summary.Offerings.Total),
		slog.Int("cached_sources", summary.Caching.Successful),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

func (s *Service) recordResult(result parser.ExecutionResult, summary *Summary) {
	duration := time.Duration(result.Metadata.DurationMs) * time.Millisecond

	if result.Success {
		summary.Parsing.Successful++
		summary.Offerings.Total += len(result.Offerings)
		metrics.RecordCrawl(result.Source, duration, len(result.Offerings), "")
		if result.Metadata.Closed {
			metrics.ClosedSourcesDetected.WithLabelValues(result.Source).Inc()
		}
		return
	}

	summary.Parsing.Failed++
	code := parser.CodeParseFailed
	if result.Error != nil {
		code = result.Error.Code
	}
	metrics.RecordCrawl(result.Source, duration, 0, code)
}

func (s *Service) cacheResult(ctx context.Context, result parser.ExecutionResult, summary *Summary) {
	if s.cache == nil {
		return
	}

	week := result.Offerings[0].Week
	year, _ := s.now().ISOWeek()

	err := s.cache.Put(ctx, cache.Entry{
		SourceID:  result.Source,
		Week:      week,
		Year:      year,
		Offerings: result.Offerings,
		Strategy:  result.Metadata.Strategy,
		Closed:    result.Metadata.Closed,
	})
	if err != nil {
		summary.Caching.Failed++
		summary.Caching.Errors = append(summary.Caching.Errors,
			fmt.Sprintf("%s: %v", result.Source, err))
		metrics.RecordCacheOperation("put", "failure")
		slog.Error("cache menu failed",
			slog.String("source", result.Source),
			slog.Any("error", err))
		return
	}

	summary.Caching.Successful++
	summary.Offerings.Cached += len(result.Offerings)
	metrics.RecordCacheOperation("put", "success")
}

func (s *Service) publishBreakerStates() {
	stats := s.executor.Stats()
	metrics.SourcesTotal.Set(float64(stats.TotalParsers))
	for _, src := range stats.Sources {
		metrics.RecordBreakerState(src.Source, string(src.Breaker.State))
	}
}
