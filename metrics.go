package fiscaldocs

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the Metrics interface with Prometheus
// collectors. Pass it to WithMetrics to instrument a client:
//
//	metrics, err := fiscaldocs.NewPrometheusMetrics(prometheus.DefaultRegisterer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := fiscaldocs.New(apiKey, fiscaldocs.WithMetrics(metrics))
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
	polls    *prometheus.CounterVec
}

// NewPrometheusMetrics creates and registers the SDK's collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fiscaldocs",
			Name:      "client_requests_total",
			Help:      "HTTP request attempts by method and status code (0 for network failures).",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fiscaldocs",
			Name:      "client_request_duration_seconds",
			Help:      "HTTP request attempt duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fiscaldocs",
			Name:      "client_retries_total",
			Help:      "Retried HTTP attempts by method.",
		}, []string{"method"}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fiscaldocs",
			Name:      "client_polls_total",
			Help:      "Async-operation polling cycles by operation.",
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.retries, m.polls} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRequest implements Metrics.
func (m *PrometheusMetrics) ObserveRequest(method string, statusCode int, duration time.Duration) {
	m.requests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	m.duration.WithLabelValues(method).Observe(duration.Seconds())
}

// IncRetry implements Metrics.
func (m *PrometheusMetrics) IncRetry(method string) {
	m.retries.WithLabelValues(method).Inc()
}

// IncPoll implements Metrics.
func (m *PrometheusMetrics) IncPoll(operation string) {
	m.polls.WithLabelValues(operation).Inc()
}
