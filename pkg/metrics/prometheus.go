package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the console collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry        *prometheus.Registry
	HTTPRequests    *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
	BackendLatency  *prometheus.HistogramVec
	BackendFailures *prometheus.CounterVec
	Uploads         *prometheus.CounterVec
	StaleRenders    *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Console HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Console HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BackendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Marketplace API call latency by method and status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
		BackendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_transport_failures_total",
			Help:      "Marketplace API calls that never got a response.",
		}, []string{"method"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploads_total",
			Help:      "Media uploads by driver and result.",
		}, []string{"driver", "result"}),
		StaleRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_stale_renders_total",
			Help:      "List pages rendered from the last good snapshot after a failed fetch.",
		}, []string{"view"}),
	}

	registry.MustRegister(
		m.HTTPRequests,
		m.HTTPLatency,
		m.BackendLatency,
		m.BackendFailures,
		m.Uploads,
		m.StaleRenders,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveHTTP(method, route string, code int, took time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(took.Seconds())
}

func (m *Metrics) ObserveBackend(method string, code int, took time.Duration) {
	if m == nil {
		return
	}
	m.BackendLatency.WithLabelValues(method, strconv.Itoa(code/100)+"xx").Observe(took.Seconds())
}

func (m *Metrics) BackendFailed(method string) {
	if m == nil {
		return
	}
	m.BackendFailures.WithLabelValues(method).Inc()
}

func (m *Metrics) Upload(driver string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Uploads.WithLabelValues(driver, result).Inc()
}

func (m *Metrics) StaleRender(view string) {
	if m == nil {
		return
	}
	m.StaleRenders.WithLabelValues(view).Inc()
}
