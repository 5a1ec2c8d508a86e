// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamErrors   *prometheus.CounterVec

	// Cross-check metrics
	CrossCheckRuns     *prometheus.CounterVec
	CrossCheckDuration *prometheus.HistogramVec
	CommonWalletsFound *prometheus.HistogramVec
	LastCrossCheckUnix prometheus.Gauge

	// HTTP metrics
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponses       *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "soylana"
	}

	return &Metrics{
		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of requests issued to upstream providers",
		}, []string{"provider", "endpoint"}),
		UpstreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "errors_total",
			Help:      "Total number of failed upstream requests",
		}, []string{"provider", "endpoint"}),

		CrossCheckRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crosscheck",
			Name:      "runs_total",
			Help:      "Total number of cross-check aggregations by mode and outcome",
		}, []string{"mode", "outcome"}),
		CrossCheckDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "crosscheck",
			Name:      "duration_seconds",
			Help:      "Duration of cross-check aggregations",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"mode"}),
		CommonWalletsFound: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "crosscheck",
			Name:      "common_wallets",
			Help:      "Number of common wallets found per cross-check",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"mode"}),
		LastCrossCheckUnix: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "crosscheck",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix timestamp of the last successful cross-check",
		}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		HTTPResponses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "responses_total",
			Help:      "Inbound HTTP responses by route and status class",
		}, []string{"route", "status"}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordUpstreamRequest records one request to an upstream provider.
func RecordUpstreamRequest(provider, endpoint string, err error) {
	DefaultMetrics.UpstreamRequests.WithLabelValues(provider, endpoint).Inc()
	if err != nil {
		DefaultMetrics.UpstreamErrors.WithLabelValues(provider, endpoint).Inc()
	}
}

// RecordCrossCheck records the outcome of one cross-check aggregation.
func RecordCrossCheck(mode string, commonWallets int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	DefaultMetrics.CrossCheckRuns.WithLabelValues(mode, outcome).Inc()
	DefaultMetrics.CrossCheckDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err == nil {
		DefaultMetrics.CommonWalletsFound.WithLabelValues(mode).Observe(float64(commonWallets))
		DefaultMetrics.LastCrossCheckUnix.Set(float64(time.Now().Unix()))
	}
}

// RecordHTTPResponse records one inbound HTTP response.
func RecordHTTPResponse(route string, statusClass string, seconds float64) {
	DefaultMetrics.HTTPRequestDuration.WithLabelValues(route).Observe(seconds)
	DefaultMetrics.HTTPResponses.WithLabelValues(route, statusClass).Inc()
}
