// Package menu provides HTTP handlers for reading cached weekly menus.
package menu

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lunch-radar/internal/handler/http/respond"
	"lunch-radar/internal/infra/cache"
	"lunch-radar/internal/observability/metrics"
)

// GetHandler serves the cached weekly menu for one source. Week and year
// default to the current ISO week when the query omits them.
type GetHandler struct {
	Cache cache.MenuCache
	Now   func() time.Time
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sourceID := r.PathValue("source")

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	defaultYear, defaultWeek := now().ISOWeek()

	week, err := queryInt(r, "week", defaultWeek)
	if err != nil || week < 1 || week > 53 {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid week parameter"))
		return
	}
	year, err := queryInt(r, "year", defaultYear)
	if err != nil || year < 2000 || year > 2200 {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid year parameter"))
		return
	}

	entry, err := h.Cache.Get(r.Context(), sourceID, week, year)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if entry == nil {
		metrics.RecordCacheOperation("get", "miss")
		respond.Error(w, http.StatusNotFound,
			fmt.Errorf("no cached menu found for %s week %d", sourceID, week))
		return
	}

	metrics.RecordCacheOperation("get", "hit")
	respond.JSON(w, http.StatusOK, entry)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
