package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexdex",
			Name:      "search_queries_total",
			Help:      "Total number of search queries",
		},
		[]string{"outcome"}, // "direct" / "fallback" / "no_match"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexdex",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"outcome"},
	)

	SearchPrimaryScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lexdex",
			Name:      "search_primary_score",
			Help:      "Score of the primary result per query",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	SearchCollectionHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexdex",
			Name:      "search_collection_hits_total",
			Help:      "Primary results served per collection",
		},
		[]string{"collection"},
	)
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchPrimaryScore)
	prometheus.MustRegister(SearchCollectionHitsTotal)
}
