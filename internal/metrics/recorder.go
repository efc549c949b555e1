// Package metrics exposes request and store counters in Prometheus format.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
)

const namespace = "linkbatch"

// HTTPMetric describes one served request.
type HTTPMetric struct {
	Method     string
	Route      string // chi route pattern, not the raw path
	StatusCode int
	Duration   time.Duration
}

// Recorder owns a private registry so tests can create as many as they need.
type Recorder struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	storeOps     *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Persistence operations, by operation and result.",
		}, []string{"op", "result"}),
	}

	r.registry.MustRegister(
		r.httpRequests,
		r.httpDuration,
		r.storeOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) RecordHTTP(m HTTPMetric) {
	r.httpRequests.WithLabelValues(m.Method, m.Route, strconv.Itoa(m.StatusCode)).Inc()
	r.httpDuration.WithLabelValues(m.Method, m.Route).Observe(m.Duration.Seconds())
}

// ObserveStoreOp counts a store operation under its outcome class.
func (r *Recorder) ObserveStoreOp(op string, err error) {
	r.storeOps.WithLabelValues(op, Result(err)).Inc()
}

// Result classifies an operation error for the "result" label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidPayload):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
