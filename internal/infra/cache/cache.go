// Package cache stores extracted weekly menus keyed by source and ISO
// week, so downstream consumers read cached offerings instead of hitting
// the restaurant sites again.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lunch-radar/internal/domain/entity"
)

// DefaultTTL is how long a cached weekly menu stays fresh. Menus change
// weekly, so a week with margin is plenty.
const DefaultTTL = 8 * 24 * time.Hour

// Key builds the canonical cache key for one source's menu in one ISO
// week. Year comes first so lexicographic ordering follows time.
func Key(sourceID string, week, year int) string {
	return fmt.Sprintf("%s-%d-%02d", strings.ToLower(sourceID), year, week)
}

// Entry is one cached weekly menu.
type Entry struct {
	SourceID  string            `json:"source_id"`
	Week      int               `json:"week"`
	Year      int               `json:"year"`
	Offerings []entity.Offering `json:"offerings"`
	Strategy  string            `json:"strategy,omitempty"`
	Closed    bool              `json:"closed,omitempty"`
	StoredAt  time.Time         `json:"stored_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Expired reports whether the entry has passed its TTL at the given time.
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// MenuCache is the weekly menu store. Get returns nil without an error
// when no fresh entry exists; storage failures are errors.
type MenuCache interface {
	Put(ctx context.Context, entry Entry) error
	Get(ctx context.Context, sourceID string, week, year int) (*Entry, error)
}
