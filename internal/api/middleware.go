package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reelhouse/reelhouse-server/internal/metrics"
)

// requestLogger logs each request and records its latency under the matched
// route pattern, so path parameters do not explode metric cardinality.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.RecordAPIRequest(r.Method, route, status, duration)

		level := s.logger.Debug
		if status >= http.StatusInternalServerError {
			level = s.logger.Error
		}
		level("HTTP request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", duration,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
