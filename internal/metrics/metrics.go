package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus metrics for the API.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	inFlightRequests prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metricsInst *Metrics
)

// New creates (once) the metrics collector. promauto registers with the
// default registry, so repeated construction must reuse the instance.
func New() *Metrics {
	metricsOnce.Do(func() {
		metricsInst = &Metrics{
			requestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "shuletrack_requests_total",
					Help: "Total number of HTTP requests processed",
				},
				[]string{"method", "route", "status"},
			),
			requestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "shuletrack_request_duration_seconds",
					Help:    "Request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			inFlightRequests: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "shuletrack_in_flight_requests",
					Help: "Number of requests currently being served",
				},
			),
		}
	})
	return metricsInst
}

// Middleware records request count, duration and in-flight gauge.
// Routes are labelled by chi pattern, not raw path, to keep the label
// cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		m.inFlightRequests.Inc()
		start := time.Now()

		next.ServeHTTP(ww, r)

		m.inFlightRequests.Dec()
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
