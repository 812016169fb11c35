// Package metrics exposes Prometheus instrumentation for the view engine.
//
// Metrics are registered on the default registry at package init and served
// by the API at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EdgeTogglesTotal counts completed toggles by edge kind and resulting state.
	EdgeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelhouse_edge_toggles_total",
			Help: "Total number of edge toggles by kind and resulting state",
		},
		[]string{"kind", "state"},
	)

	// EdgeToggleFailures counts toggles that returned an error, by error code.
	EdgeToggleFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelhouse_edge_toggle_failures_total",
			Help: "Total number of failed edge toggles by kind and error code",
		},
		[]string{"kind", "code"},
	)

	// FeedQueryDuration tracks how long feed compositions take.
	FeedQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelhouse_feed_query_duration_seconds",
			Help:    "Duration of feed queries in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"feed"},
	)

	// FeedResultItems tracks how many items each feed page returned.
	FeedResultItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelhouse_feed_result_items",
			Help:    "Number of items returned per feed page",
			Buckets: []float64{0, 1, 5, 10, 25, 50},
		},
		[]string{"feed"},
	)

	// SamplerResetsTotal counts watch history resets caused by sampler exhaustion.
	SamplerResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelhouse_sampler_resets_total",
			Help: "Total number of watch history resets after recommendation exhaustion",
		},
	)

	// SamplerSamplesTotal counts successful recommendation samples.
	SamplerSamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelhouse_sampler_samples_total",
			Help: "Total number of recommendations served",
		},
	)

	// ViewCacheRequests counts view cache lookups by view and outcome.
	ViewCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelhouse_view_cache_requests_total",
			Help: "Total number of view cache lookups by view and result",
		},
		[]string{"view", "result"},
	)

	// APIRequestsTotal counts HTTP requests by method, route pattern and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelhouse_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	// APIRequestDuration tracks HTTP request latency by method and route pattern.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelhouse_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordToggle records a completed toggle.
func RecordToggle(kind string, present bool) {
	state := "removed"
	if present {
		state = "created"
	}
	EdgeTogglesTotal.WithLabelValues(kind, state).Inc()
}

// RecordToggleFailure records a failed toggle.
func RecordToggleFailure(kind, code string) {
	EdgeToggleFailures.WithLabelValues(kind, code).Inc()
}

// RecordFeedQuery records one feed page composition.
func RecordFeedQuery(feed string, duration time.Duration, items int) {
	FeedQueryDuration.WithLabelValues(feed).Observe(duration.Seconds())
	FeedResultItems.WithLabelValues(feed).Observe(float64(items))
}

// RecordSample records a served recommendation.
func RecordSample() {
	SamplerSamplesTotal.Inc()
}

// RecordSamplerReset records a watch history reset.
func RecordSamplerReset() {
	SamplerResetsTotal.Inc()
}

// RecordCacheLookup records a view cache hit or miss.
func RecordCacheLookup(view string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ViewCacheRequests.WithLabelValues(view, result).Inc()
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
