package cache

import (
	"context"

	"lunch-radar/internal/resilience/retry"
)

// Retrying wraps a MenuCache with retry on transient store failures.
// Reads and writes both go through the cache retry policy.
type Retrying struct {
	inner MenuCache
	cfg   retry.Config
}

// WithRetry decorates a MenuCache with the standard cache retry policy.
func WithRetry(inner MenuCache) *Retrying {
	return &Retrying{inner: inner, cfg: retry.CacheConfig()}
}

func (r *Retrying) Put(ctx context.Context, entry Entry) error {
	return retry.WithBackoff(ctx, r.cfg, func() error {
		return r.inner.Put(ctx, entry)
	})
}

func (r *Retrying) Get(ctx context.Context, sourceID string, week, year int) (*Entry, error) {
	var entry *Entry
	err := retry.WithBackoff(ctx, r.cfg, func() error {
		var getErr error
		entry, getErr = r.inner.Get(ctx, sourceID, week, year)
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
