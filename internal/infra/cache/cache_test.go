package cache

import (
	"context"
	"testing"
	"time"

	"lunch-radar/internal/domain/entity"
)

func TestKey(t *testing.T) {
	tests := []struct {
		sourceID string
		week     int
		year     int
		want     string
	}{
		{"bistro-k", 29, 2025, "bistro-k-2025-29"},
		{"Bistro-K", 29, 2025, "bistro-k-2025-29"},
		{"kantin", 5, 2026, "kantin-2026-05"},
	}
	for _, tt := range tests {
		if got := Key(tt.sourceID, tt.week, tt.year); got != tt.want {
			t.Errorf("Key(%q, %d, %d) = %q, want %q", tt.sourceID, tt.week, tt.year, got, tt.want)
		}
	}
}

func sampleEntry() Entry {
	return Entry{
		SourceID: "bistro-k",
		Week:     29,
		Year:     2025,
		Strategy: "table",
		Offerings: []entity.Offering{{
			Name:       "Köttbullar",
			Price:      125,
			Weekday:    entity.Monday,
			Week:       29,
			SourceName: "bistro-k",
		}},
	}
}

func TestInMemory_PutGet(t *testing.T) {
	c := NewInMemoryMenuCache(InMemoryConfig{})
	ctx := context.Background()

	if err := c.Put(ctx, sampleEntry()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := c.Get(ctx, "BISTRO-K", 29, 2025)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want entry")
	}
	if len(got.Offerings) != 1 || got.Offerings[0].Name != "Köttbullar" {
		t.Errorf("offerings = %+v", got.Offerings)
	}
	if got.StoredAt.IsZero() || got.ExpiresAt.IsZero() {
		t.Error("Put must fill StoredAt and ExpiresAt")
	}

	miss, err := c.Get(ctx, "bistro-k", 30, 2025)
	if err != nil {
		t.Fatalf("Get(miss) error = %v", err)
	}
	if miss != nil {
		t.Error("Get for uncached week should be nil")
	}
}

func TestInMemory_TTLExpiry(t *testing.T) {
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	c := NewInMemoryMenuCache(InMemoryConfig{
		TTL:   time.Hour,
		Clock: func() time.Time { return now },
	})
	ctx := context.Background()

	if err := c.Put(ctx, sampleEntry()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	now = now.Add(30 * time.Minute)
	if got, _ := c.Get(ctx, "bistro-k", 29, 2025); got == nil {
		t.Fatal("entry expired before TTL")
	}

	now = now.Add(time.Hour)
	if got, _ := c.Get(ctx, "bistro-k", 29, 2025); got != nil {
		t.Fatal("entry still fresh after TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry read, want 0", c.Len())
	}
}

func TestInMemory_PutOverwrites(t *testing.T) {
	c := NewInMemoryMenuCache(InMemoryConfig{})
	ctx := context.Background()

	first := sampleEntry()
	if err := c.Put(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := sampleEntry()
	second.Offerings = append(second.Offerings, entity.Offering{
		Name: "Ärtsoppa", Price: 110, Weekday: entity.Thursday, Week: 29, SourceName: "bistro-k",
	})
	if err := c.Put(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := c.Get(ctx, "bistro-k", 29, 2025)
	if err != nil || got == nil {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if len(got.Offerings) != 2 {
		t.Errorf("len(Offerings) = %d, want 2 after overwrite", len(got.Offerings))
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
