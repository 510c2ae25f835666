package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "zora_dashboard"

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// Whale stream metrics
	PollCycles    *prometheus.CounterVec
	WhalesEmitted prometheus.Counter
	Subscribers   prometheus.Gauge
}

// New creates a new Metrics instance registered on its own registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of upstream API requests by endpoint and result",
		}, []string{"endpoint", "result"}),
		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream API request latency including retries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		}, []string{"route", "code"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		PollCycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "whale",
			Name:      "poll_cycles_total",
			Help:      "Total number of whale poll cycles by result",
		}, []string{"result"}),
		WhalesEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "whale",
			Name:      "trades_emitted_total",
			Help:      "Total number of whale trades sent to subscribers",
		}),
		Subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "whale",
			Name:      "subscribers",
			Help:      "Current number of whale stream subscribers",
		}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveUpstream records one upstream API call.
func (m *Metrics) ObserveUpstream(endpoint string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(endpoint, result(err)).Inc()
	m.UpstreamLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.HTTPLatency.WithLabelValues(route).Observe(d.Seconds())
}

// ObservePollCycle records one whale poll cycle.
func (m *Metrics) ObservePollCycle(err error) {
	if m == nil {
		return
	}
	m.PollCycles.WithLabelValues(result(err)).Inc()
}

// ObserveWhalesEmitted adds n sent whale trades.
func (m *Metrics) ObserveWhalesEmitted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.WhalesEmitted.Add(float64(n))
}

// SetSubscribers sets the current subscriber count.
func (m *Metrics) SetSubscribers(n int) {
	if m == nil {
		return
	}
	m.Subscribers.Set(float64(n))
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
