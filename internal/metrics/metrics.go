package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movie_search",
			Name:      "search_requests_total",
			Help:      "Total number of search requests by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "movie_search",
			Name:      "search_duration_seconds",
			Help:      "Time spent scoring a search request",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method"},
	)

	LexicalFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "movie_search",
			Name:      "lexical_fallback_total",
			Help:      "Lexical searches answered by title substring matching",
		},
	)

	QueryEncodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "movie_search",
			Name:      "query_encode_duration_seconds",
			Help:      "Query embedding request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"provider", "status"},
	)

	EmbeddingCacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movie_search",
			Name:      "embedding_cache_lookups_total",
			Help:      "Query embedding cache lookups by result",
		},
		[]string{"result"},
	)

	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "movie_search",
			Name:      "catalog_movies",
			Help:      "Number of movies in the loaded catalog",
		},
	)
)

func init() {
	prometheus.MustRegister(
		SearchRequestsTotal,
		SearchDuration,
		LexicalFallbackTotal,
		QueryEncodeDuration,
		EmbeddingCacheLookupsTotal,
		CatalogSize,
	)
}
