// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillhub_http_requests_total",
			Help: "Total HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillhub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AuthorizationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillhub_authorization_decisions_total",
			Help: "Authorization gate outcomes by reason.",
		},
		[]string{"route", "reason"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillhub_rate_limited_total",
			Help: "Requests rejected by a rate limiter.",
		},
		[]string{"route"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillhub_cache_hits_total",
			Help: "Read-through cache hits.",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillhub_cache_misses_total",
			Help: "Read-through cache misses.",
		},
	)
)

// RecordHTTPRequest observes one served request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthorization counts a rule decision by reason.
func RecordAuthorization(route, reason string) {
	AuthorizationDecisions.WithLabelValues(route, reason).Inc()
}

func RecordRateLimited(route string) {
	RateLimitedTotal.WithLabelValues(route).Inc()
}

func RecordCacheHit() {
	CacheHits.Inc()
}

func RecordCacheMiss() {
	CacheMisses.Inc()
}
