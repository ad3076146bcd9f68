package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge
	syncJobsTotal       *prometheus.CounterVec
	syncJobDuration     prometheus.Histogram
	ingestedTotal       *prometheus.CounterVec
	awbGeneratedTotal   *prometheus.CounterVec
	invoicesIssuedTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Requests currently being served.",
			},
		),
		syncJobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_jobs_total",
				Help:      "Store sync jobs by final status.",
			},
			[]string{"status"},
		),
		syncJobDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sync_job_duration_seconds",
				Help:      "Wall time of store sync jobs.",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
		),
		ingestedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_ingested_total",
				Help:      "Rows newly inserted by store syncs.",
			},
			[]string{"entity"},
		),
		awbGeneratedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "awb_generated_total",
				Help:      "Shipping labels generated, by courier.",
			},
			[]string{"courier"},
		),
		invoicesIssuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invoices_issued_total",
				Help:      "Invoices issued, by provider.",
			},
			[]string{"provider"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpInFlight,
		m.syncJobsTotal,
		m.syncJobDuration,
		m.ingestedTotal,
		m.awbGeneratedTotal,
		m.invoicesIssuedTotal,
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest records one served request. route is the matched route
// template, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RequestStarted counts a request as in flight until the returned func runs
func (m *Metrics) RequestStarted() (done func()) {
	if m == nil {
		return func() {}
	}
	m.httpInFlight.Inc()
	return m.httpInFlight.Dec
}

// ObserveSyncJob records a finished store sync job
func (m *Metrics) ObserveSyncJob(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.syncJobsTotal.WithLabelValues(status).Inc()
	m.syncJobDuration.Observe(d.Seconds())
}

// RecordIngested adds newly inserted products and orders
func (m *Metrics) RecordIngested(products, orders int) {
	if m == nil {
		return
	}
	m.ingestedTotal.WithLabelValues("product").Add(float64(products))
	m.ingestedTotal.WithLabelValues("order").Add(float64(orders))
}

// RecordAWBGenerated counts a generated shipping label
func (m *Metrics) RecordAWBGenerated(courier string) {
	if m == nil {
		return
	}
	m.awbGeneratedTotal.WithLabelValues(courier).Inc()
}

// RecordInvoiceIssued counts an issued invoice
func (m *Metrics) RecordInvoiceIssued(provider string) {
	if m == nil {
		return
	}
	m.invoicesIssuedTotal.WithLabelValues(provider).Inc()
}
