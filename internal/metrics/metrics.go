package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered on the default registry and exposed via /metrics.

var (
	// CacheHits counts cache reads served within TTL, by cache kind
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinelog_cache_hits_total",
		Help: "Cache reads served without refreshing from TMDB.",
	}, []string{"kind"})

	// CacheMisses counts cache reads that triggered a refresh, by cache kind
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinelog_cache_misses_total",
		Help: "Cache reads that were missing or stale and triggered a refresh.",
	}, []string{"kind"})

	// UpstreamAttempts counts individual TMDB round trips by outcome
	UpstreamAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinelog_tmdb_attempts_total",
		Help: "Individual HTTP attempts against TMDB.",
	}, []string{"endpoint", "outcome"})

	// RequestDuration observes inbound HTTP handling time
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cinelog_http_request_duration_seconds",
		Help:    "Inbound HTTP request duration.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "status"})
)
