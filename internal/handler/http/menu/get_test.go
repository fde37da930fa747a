package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/infra/cache"
)

func newServer(menuCache cache.MenuCache, now func() time.Time) *httptest.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /menus/{source}", GetHandler{Cache: menuCache, Now: now})
	return httptest.NewServer(mux)
}

func TestGetHandler(t *testing.T) {
	menuCache := cache.NewInMemoryMenuCache(cache.InMemoryConfig{})
	_ = menuCache.Put(context.Background(), cache.Entry{
		SourceID: "bistro-k",
		Week:     29,
		Year:     2025,
		Offerings: []entity.Offering{{
			Name: "Köttbullar", Price: 125, Weekday: entity.Monday, Week: 29, SourceName: "bistro-k",
		}},
	})

	now := func() time.Time { return time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC) }
	srv := newServer(menuCache, now)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/menus/bistro-k?week=29&year=2025")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var entry cache.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		t.Fatal(err)
	}
	if entry.SourceID != "bistro-k" || len(entry.Offerings) != 1 {
		t.Errorf("entry = %+v", entry)
	}
}

// 2025-07-14 is in ISO week 29, so omitting week and year must hit the
// same entry.
func TestGetHandler_DefaultsToCurrentWeek(t *testing.T) {
	menuCache := cache.NewInMemoryMenuCache(cache.InMemoryConfig{})
	_ = menuCache.Put(context.Background(), cache.Entry{
		SourceID: "bistro-k", Week: 29, Year: 2025,
	})

	now := func() time.Time { return time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC) }
	srv := newServer(menuCache, now)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/menus/bistro-k")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

type stubRegistry []entity.SourceDescriptor

func (s stubRegistry) Sources() []entity.SourceDescriptor { return s }

func TestListHandler(t *testing.T) {
	menuCache := cache.NewInMemoryMenuCache(cache.InMemoryConfig{})
	_ = menuCache.Put(context.Background(), cache.Entry{SourceID: "bistro-k", Week: 29, Year: 2025})
	_ = menuCache.Put(context.Background(), cache.Entry{SourceID: "kantin", Week: 29, Year: 2025})

	registry := stubRegistry{
		{ID: "bistro-k", Active: true},
		{ID: "kantin", Active: true},
		{ID: "pausad", Active: false},
		{ID: "tom", Active: true}, // nothing cached
	}

	mux := http.NewServeMux()
	mux.Handle("GET /menus", ListHandler{
		Cache:    menuCache,
		Registry: registry,
		Now:      func() time.Time { return time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC) },
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/menus")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body WeeklyMenus
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Week != 29 || body.Year != 2025 {
		t.Errorf("week/year = %d/%d, want 29/2025", body.Week, body.Year)
	}
	if len(body.Menus) != 2 {
		t.Errorf("len(Menus) = %d, want 2", len(body.Menus))
	}
}

func TestGetHandler_MissAndBadParams(t *testing.T) {
	srv := newServer(cache.NewInMemoryMenuCache(cache.InMemoryConfig{}), nil)
	defer srv.Close()

	tests := []struct {
		path string
		want int
	}{
		{"/menus/okand?week=29&year=2025", http.StatusNotFound},
		{"/menus/okand?week=99", http.StatusBadRequest},
		{"/menus/okand?week=abc", http.StatusBadRequest},
		{"/menus/okand?year=1200", http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
	}
}
