// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat messages handled, by route",
		},
		[]string{"route"},
	)

	ChatRequestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_request_failures_total",
			Help: "Chat messages answered with a degraded error reply",
		},
		[]string{"route", "error_code"},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_request_duration_seconds",
			Help:    "Duration of chat message handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	ChatRequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_requests_active",
			Help: "Number of chat messages currently being handled",
		},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
		},
		[]string{"stage"},
	)

	QueryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_lookups_total",
			Help: "Query result cache lookups by outcome (hit, miss, error)",
		},
		[]string{"result"},
	)
)
