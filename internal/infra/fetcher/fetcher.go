// Package fetcher provides the HTTP document fetcher used by menu parsers.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/resilience/retry"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB
	userAgent   = "LunchRadarBot/1.0"

	// defaultRequestsPerSecond keeps the crawler polite towards the small
	// restaurant sites it scrapes.
	defaultRequestsPerSecond = 2
)

// HTTPDocumentFetcher fetches menu pages over HTTP and parses them with
// goquery. Requests are rate limited globally and retried with backoff on
// transient failures.
type HTTPDocumentFetcher struct {
	client         *http.Client
	limiter        *rate.Limiter
	retryConfig    retry.Config
	denyPrivateIPs bool
}

// Option configures the fetcher.
type Option func(*HTTPDocumentFetcher)

// WithRateLimit overrides the default requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(f *HTTPDocumentFetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRetryConfig overrides the default retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(f *HTTPDocumentFetcher) {
		f.retryConfig = cfg
	}
}

// WithPrivateIPGuard rejects target URLs that resolve to loopback, private,
// or link-local addresses. Enable in production; leave off for local tests
// against loopback servers.
func WithPrivateIPGuard() Option {
	return func(f *HTTPDocumentFetcher) {
		f.denyPrivateIPs = true
	}
}

// New creates an HTTPDocumentFetcher with the given HTTP client. A nil
// client gets a sane default with a request timeout.
func New(client *http.Client, opts ...Option) *HTTPDocumentFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	f := &HTTPDocumentFetcher{
		client:      client,
		limiter:     rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		retryConfig: retry.FetchConfig(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchNode fetches the document at url and returns the selection matching
// selector, or the document root when selector is empty. A selector that
// matches nothing yields a nil selection without an error; network and
// server failures come back wrapped so callers can classify them as source
// unavailability.
func (f *HTTPDocumentFetcher) FetchNode(ctx context.Context, url, selector string) (*goquery.Selection, error) {
	if err := entity.ValidateURL(url); err != nil {
		return nil, fmt.Errorf("url validation failed: %w", err)
	}
	if f.denyPrivateIPs {
		if err := checkPublicAddress(url); err != nil {
			return nil, fmt.Errorf("url validation failed: %w", err)
		}
	}

	var doc *goquery.Document
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		var err error
		doc, err = f.fetchDocument(ctx, url)
		return err
	})
	if retryErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrSourceUnavailable, url, retryErr)
	}

	if selector == "" {
		return doc.Selection, nil
	}
	match := doc.Find(selector)
	if match.Length() == 0 {
		slog.Debug("selector matched nothing",
			slog.String("url", url),
			slog.String("selector", selector))
		return nil, nil
	}
	return match, nil
}

// fetchDocument performs a single fetch attempt.
func (f *HTTPDocumentFetcher) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	// Limit body size to prevent memory exhaustion
	limitedReader := io.LimitReader(resp.Body, maxBodySize)

	doc, err := goquery.NewDocumentFromReader(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}
