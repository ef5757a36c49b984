package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics holds all Prometheus metrics for the dashboard API.
type APIMetrics struct {
	RequestsTotal             *prometheus.CounterVec
	RequestDuration           *prometheus.HistogramVec
	AnalyticsRecomputesTotal  prometheus.Counter
	AnalyticsRecomputeSeconds prometheus.Histogram
	LoginThrottledTotal       prometheus.Counter
}

// New initializes and registers the Prometheus metrics.
func New() *APIMetrics {
	return &APIMetrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agile_dashboard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agile_dashboard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		AnalyticsRecomputesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "agile_dashboard",
			Subsystem: "analytics",
			Name:      "recomputes_total",
			Help:      "Total number of full analytics recomputations.",
		}),
		AnalyticsRecomputeSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agile_dashboard",
			Subsystem: "analytics",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of a full analytics recomputation.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}),
		LoginThrottledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "agile_dashboard",
			Subsystem: "auth",
			Name:      "login_throttled_total",
			Help:      "Total number of login attempts rejected by the rate limiter.",
		}),
	}
}
