package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nao1215/slareport/internal/model"
)

// Report outcomes used as the "outcome" label.
const (
	outcomeOK            = "ok"
	outcomeBadRequest    = "bad_request"
	outcomeUnprocessable = "unprocessable"
	outcomeTooLarge      = "too_large"
	outcomeError         = "error"
)

// Metrics holds the Prometheus collectors of one server.
//
// Design decision: Each server owns its registry instead of using the
// global default registry, so tests can build many servers without
// duplicate registration panics.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	reportsTotal    *prometheus.CounterVec
	ordersTotal     *prometheus.CounterVec
}

// NewMetrics creates and registers the server collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slareport_http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status code",
			},
			[]string{"method", "route", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slareport_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slareport_reports_total",
				Help: "Total number of report requests by outcome",
			},
			[]string{"outcome"},
		),
		ordersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slareport_orders_classified_total",
				Help: "Total number of reported orders by SLA status",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.reportsTotal,
		m.ordersTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler returns the /metrics handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route pattern.
// The route pattern, not the raw path, is used as label to keep the
// label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// observeReport counts one report request and, on success, its orders.
func (m *Metrics) observeReport(outcome string, result *model.ReportResult) {
	m.reportsTotal.WithLabelValues(outcome).Inc()
	if result == nil {
		return
	}
	gt := result.GrandTotal
	m.ordersTotal.WithLabelValues(string(model.SLAMet)).Add(float64(gt.Met))
	m.ordersTotal.WithLabelValues(string(model.SLABreach)).Add(float64(gt.Breach))
	m.ordersTotal.WithLabelValues(string(model.SLAUnknown)).Add(float64(gt.Unclassified))
}
