package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request-level metadata plus the business counters the
// restaurant actually watches (orders submitted, carts checked out).
type HTTPMetrics struct {
	duration      *prometheus.HistogramVec
	requests      *prometheus.CounterVec
	ordersCreated prometheus.Counter
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders successfully created at checkout.",
	})
	reg.MustRegister(duration, requests, ordersCreated)
	return &HTTPMetrics{
		duration:      duration,
		requests:      requests,
		ordersCreated: ordersCreated,
	}
}

// ObserveRequest records one completed request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(method, normalizeRoute(route)).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(method, normalizeRoute(route), strconv.Itoa(status)).Inc()
}

// IncOrdersCreated bumps the order counter.
func (m *HTTPMetrics) IncOrdersCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

func normalizeRoute(route string) string {
	if route == "" {
		return "unknown"
	}
	return route
}
