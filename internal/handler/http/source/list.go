// Package source provides HTTP handlers for the source registry.
package source

import (
	"net/http"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/handler/http/respond"
)

// Registry is the subset of the orchestrator the source handlers need.
type Registry interface {
	Sources() []entity.SourceDescriptor
}

type ListHandler struct{ Registry Registry }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	list := h.Registry.Sources()
	out := make([]DTO, 0, len(list))
	for _, d := range list {
		out = append(out, toDTO(d))
	}
	respond.JSON(w, http.StatusOK, out)
}
