package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Analytics aggregator metrics, labelled per dashboard metric so a
	// failing counter is visible independently of the others
	AnalyticsQueryDuration *prometheus.HistogramVec
	AnalyticsQueryFailures *prometheus.CounterVec

	// Audit trail metrics. Failed audit writes never fail the admin action,
	// so this counter is the only place they stay visible.
	AuditLogWritesTotal   prometheus.Counter
	AuditLogWriteFailures prometheus.Counter

	// Rate limiting metrics
	RateLimitExceededTotal *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			AnalyticsQueryDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "analytics_query_duration_seconds",
					Help:    "Latency of individual analytics queries",
					Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"metric"},
			),
			AnalyticsQueryFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "analytics_query_failures_total",
					Help: "Analytics queries that errored or timed out",
				},
				[]string{"metric"},
			),
			AuditLogWritesTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "audit_log_writes_total",
					Help: "Admin audit log rows written",
				},
			),
			AuditLogWriteFailures: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "audit_log_write_failures_total",
					Help: "Admin audit log writes that failed",
				},
			),
			RateLimitExceededTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Requests rejected by the rate limiter",
				},
				[]string{"endpoint", "method"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing it if needed
func Get() *Metrics {
	return Initialize()
}

// RecordAnalyticsQuery observes one analytics query's duration and outcome
func RecordAnalyticsQuery(metric string, duration time.Duration, err error) {
	m := Get()
	m.AnalyticsQueryDuration.WithLabelValues(metric).Observe(duration.Seconds())
	if err != nil {
		m.AnalyticsQueryFailures.WithLabelValues(metric).Inc()
	}
}

// RecordAuditLogWrite counts an audit log insert attempt
func RecordAuditLogWrite(err error) {
	m := Get()
	m.AuditLogWritesTotal.Inc()
	if err != nil {
		m.AuditLogWriteFailures.Inc()
	}
}

// RecordRateLimitExceeded counts a rate limited request
func RecordRateLimitExceeded(endpoint, method string) {
	Get().RateLimitExceededTotal.WithLabelValues(endpoint, method).Inc()
}
