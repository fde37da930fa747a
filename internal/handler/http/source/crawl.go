package source

import (
	"context"
	"errors"
	"net/http"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/handler/http/respond"
	"lunch-radar/internal/parser"
)

// Executor runs one registered source on demand.
type Executor interface {
	ExecuteSource(ctx context.Context, id string) (parser.ExecutionResult, error)
}

// CrawlHandler triggers a single-source crawl and returns its execution
// result. A failed execution is still a 200: the result body carries the
// structured error, matching what batch consumers see.
type CrawlHandler struct{ Executor Executor }

func (h CrawlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := h.Executor.ExecuteSource(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrSourceNotFound):
			respond.Error(w, http.StatusNotFound, err)
		case errors.Is(err, entity.ErrSourceInactive):
			respond.Error(w, http.StatusConflict, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
