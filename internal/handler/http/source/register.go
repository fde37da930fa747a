package source

import "net/http"

// Service is the orchestrator surface the source endpoints need.
type Service interface {
	Registry
	Executor
}

// Register wires the source endpoints onto the mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /sources", ListHandler{svc})
	mux.Handle("POST /sources/{id}/crawl", CrawlHandler{svc})
}
