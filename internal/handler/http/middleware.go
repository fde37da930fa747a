package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lunch-radar/internal/handler/http/requestid"
	"lunch-radar/internal/handler/http/responsewriter"
	"lunch-radar/internal/observability/metrics"
)

// Logging returns middleware that logs HTTP requests with structured
// logging: request details, response status, size, and duration.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			logger.Info("request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

// Metrics returns middleware that records Prometheus metrics for each
// request. The route pattern, not the raw path, is used as the path label
// to keep cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := responsewriter.Wrap(w)
		next.ServeHTTP(wrapped, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(r.Method, path,
			strconv.Itoa(wrapped.StatusCode()), time.Since(start))
	})
}

// Chain applies the standard middleware stack: request id, metrics, and
// request logging.
func Chain(handler http.Handler, logger *slog.Logger) http.Handler {
	return requestid.Middleware(Metrics(Logging(logger)(handler)))
}
