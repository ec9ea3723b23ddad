package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// AggregateRequests tracks the total number of aggregation requests
	AggregateRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jamkick_aggregate_requests_total",
			Help: "Total number of aggregation requests",
		},
		[]string{"status"}, // status: ok, error
	)

	// AggregateDuration measures aggregation duration in seconds
	AggregateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jamkick_aggregate_duration_seconds",
			Help:    "Aggregation request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
	)

	// UpstreamRequests tracks calls to the upstream APIs by outcome
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jamkick_upstream_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"api", "status"}, // api: history, events; status: HTTP code or error
	)

	// CacheOperations tracks cache gateway reads and writes
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jamkick_cache_operations_total",
			Help: "Total number of cache gateway operations",
		},
		[]string{"operation", "result"}, // operation: get, set; result: hit, miss, ok, error
	)
)
