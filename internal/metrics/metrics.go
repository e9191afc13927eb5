// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records application metrics against a Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  prometheus.Histogram
	loginSuccess  *prometheus.CounterVec
	loginFailure  *prometheus.CounterVec
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	reviewsPosted prometheus.Counter
}

// NewCollector creates a collector and registers its metrics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookreview_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookreview_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		loginSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookreview_login_success_total",
			Help: "Successful logins by method (password or google).",
		}, []string{"method"}),
		loginFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookreview_login_failure_total",
			Help: "Failed logins by method (password or google).",
		}, []string{"method"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookreview_cache_hits_total",
			Help: "Response cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookreview_cache_misses_total",
			Help: "Response cache misses.",
		}),
		reviewsPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookreview_reviews_posted_total",
			Help: "Reviews created.",
		}),
	}

	registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.loginSuccess,
		c.loginFailure,
		c.cacheHits,
		c.cacheMisses,
		c.reviewsPosted,
	)

	return c
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

// RecordLogin records a login attempt outcome for the given method.
func (c *Collector) RecordLogin(method string, success bool) {
	if success {
		c.loginSuccess.WithLabelValues(method).Inc()
		return
	}
	c.loginFailure.WithLabelValues(method).Inc()
}

// RecordCacheHit records a response cache hit.
func (c *Collector) RecordCacheHit() { c.cacheHits.Inc() }

// RecordCacheMiss records a response cache miss.
func (c *Collector) RecordCacheMiss() { c.cacheMisses.Inc() }

// RecordReviewPosted records a created review.
func (c *Collector) RecordReviewPosted() { c.reviewsPosted.Inc() }

// Handler returns the HTTP handler that serves the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
