// Package metrics provides centralized Prometheus metrics for the
// application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Crawl metrics track menu source executions
var (
	// SourcesTotal tracks the number of registered menu sources
	SourcesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "menu_sources_total",
			Help: "Total number of registered menu sources",
		},
	)

	// OfferingsExtractedTotal counts valid offerings extracted per source
	OfferingsExtractedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_offerings_extracted_total",
			Help: "Total number of valid offerings extracted from sources",
		},
		[]string{"source"},
	)

	// SourceCrawlDuration measures time to crawl one menu source
	SourceCrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "menu_source_crawl_duration_seconds",
			Help:    "Time taken to crawl a menu source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	// SourceCrawlErrors counts failed executions by error code
	SourceCrawlErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_source_crawl_errors_total",
			Help: "Total number of menu crawl errors",
		},
		[]string{"source", "error_code"},
	)

	// CircuitBreakerState exposes each source's breaker state
	// (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "menu_circuit_breaker_state",
			Help: "Circuit breaker state per source (0=closed, 1=half-open, 2=open)",
		},
		[]string{"source"},
	)

	// ClosedSourcesDetected counts extractions classified as closures
	ClosedSourcesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_closed_sources_detected_total",
			Help: "Total number of extractions classified as restaurant closures",
		},
		[]string{"source"},
	)
)

// Cache metrics track weekly menu cache operations
var (
	// CacheOperationsTotal counts cache operations by kind and result
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_cache_operations_total",
			Help: "Total number of menu cache operations",
		},
		[]string{"operation", "result"}, // operation: get, put; result: hit, miss, success, failure
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordCrawl records one source execution outcome.
func RecordCrawl(source string, duration time.Duration, offerings int, errorCode string) {
	SourceCrawlDuration.WithLabelValues(source).Observe(duration.Seconds())
	if errorCode != "" {
		SourceCrawlErrors.WithLabelValues(source, errorCode).Inc()
		return
	}
	if offerings > 0 {
		OfferingsExtractedTotal.WithLabelValues(source).Add(float64(offerings))
	}
}

// RecordBreakerState updates the breaker state gauge for a source.
func RecordBreakerState(source, state string) {
	var value float64
	switch state {
	case "half_open":
		value = 1
	case "open":
		value = 2
	}
	CircuitBreakerState.WithLabelValues(source).Set(value)
}

// RecordCacheOperation records one cache get or put outcome.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}
