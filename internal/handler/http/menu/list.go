package menu

import (
	"fmt"
	"net/http"
	"time"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/handler/http/respond"
	"lunch-radar/internal/infra/cache"
)

// Registry is the subset of the orchestrator the menu handlers need.
type Registry interface {
	Sources() []entity.SourceDescriptor
}

// WeeklyMenus is the response envelope for the menu list endpoint. Sources
// without a cached menu for the requested week are omitted.
type WeeklyMenus struct {
	Week  int           `json:"week"`
	Year  int           `json:"year"`
	Menus []cache.Entry `json:"menus"`
}

// ListHandler serves the cached menus of every active source for one week.
// Week and year default to the current ISO week when the query omits them.
type ListHandler struct {
	Cache    cache.MenuCache
	Registry Registry
	Now      func() time.Time
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	menus := make([]cache.Entry, 0)
	for _, d := range h.Registry.Sources() {
		if !d.Active {
			continue
		}
		entry, err := h.Cache.Get(r.Context(), d.ID, week, year)
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
		if entry != nil {
			menus = append(menus, *entry)
		}
	}

	respond.JSON(w, http.StatusOK, WeeklyMenus{Week: week, Year: year, Menus: menus})
}
