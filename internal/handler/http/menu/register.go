package menu

import (
	"net/http"

	"lunch-radar/internal/infra/cache"
)

// Register wires the menu endpoints onto the mux.
func Register(mux *http.ServeMux, menuCache cache.MenuCache, registry Registry) {
	mux.Handle("GET /menus", ListHandler{Cache: menuCache, Registry: registry})
	mux.Handle("GET /menus/{source}", GetHandler{Cache: menuCache})
}
