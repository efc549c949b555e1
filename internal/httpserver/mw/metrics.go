package mw

import (
	"cmp"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/metrics"
)

type HTTPRecorder interface {
	RecordHTTP(m metrics.HTTPMetric)
}

// Metrics records one HTTPMetric per request, labelled by route pattern.
func Metrics(recorder HTTPRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(ww, r)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}

			recorder.RecordHTTP(metrics.HTTPMetric{
				Method:     r.Method,
				Route:      cmp.Or(route, "unmatched"),
				StatusCode: cmp.Or(ww.status, http.StatusOK),
				Duration:   time.Since(start),
			})
		})
	}
}
