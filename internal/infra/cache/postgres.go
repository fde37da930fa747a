package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"lunch-radar/internal/domain/entity"
)

// PostgresMenuCache persists weekly menus in the menu_cache table. One row
// per cache key; Put upserts so re-crawling a week replaces the entry.
type PostgresMenuCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewPostgresMenuCache creates a Postgres-backed menu cache. A non-positive
// ttl falls back to DefaultTTL.
func NewPostgresMenuCache(db *sql.DB, ttl time.Duration) *PostgresMenuCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PostgresMenuCache{db: db, ttl: ttl}
}

// Put upserts the entry under its canonical key.
func (c *PostgresMenuCache) Put(ctx context.Context, entry Entry) error {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}
	if entry.ExpiresAt.IsZero() {
		entry.ExpiresAt = entry.StoredAt.Add(c.ttl)
	}

	offeringsJSON, err := json.Marshal(entry.Offerings)
	if err != nil {
		return fmt.Errorf("marshal offerings: %w", err)
	}

	const query = `
INSERT INTO menu_cache (cache_key, source_id, week, year, offerings, strategy, closed, stored_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (cache_key) DO UPDATE SET
	offerings = EXCLUDED.offerings,
	strategy = EXCLUDED.strategy,
	closed = EXCLUDED.closed,
	stored_at = EXCLUDED.stored_at,
	expires_at = EXCLUDED.expires_at`

	_, err = c.db.ExecContext(ctx, query,
		Key(entry.SourceID, entry.Week, entry.Year),
		entry.SourceID, entry.Week, entry.Year,
		offeringsJSON, entry.Strategy, entry.Closed,
		entry.StoredAt, entry.ExpiresAt)
	if err != nil {
		return fmt.Errorf("Put: %w", err)
	}
	return nil
}

// Get returns the fresh entry for the key, or nil when absent or expired.
func (c *PostgresMenuCache) Get(ctx context.Context, sourceID string, week, year int) (*Entry, error) {
	const query = `
SELECT source_id, week, year, offerings, strategy, closed, stored_at, expires_at
FROM menu_cache
WHERE cache_key = $1 AND expires_at > NOW()
LIMIT 1`

	var entry Entry
	var offeringsJSON []byte
	err := c.db.QueryRowContext(ctx, query, Key(sourceID, week, year)).Scan(
		&entry.SourceID, &entry.Week, &entry.Year,
		&offeringsJSON, &entry.Strategy, &entry.Closed,
		&entry.StoredAt, &entry.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	if len(offeringsJSON) > 0 {
		var offerings []entity.Offering
		if err := json.Unmarshal(offeringsJSON, &offerings); err != nil {
			return nil, fmt.Errorf("Get: unmarshal offerings: %w", err)
		}
		entry.Offerings = offerings
	}
	return &entry, nil
}
