package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SearchQueriesTotal counts non-empty search queries.
	SearchQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "smartstay",
		Name:      "search_queries_total",
		Help:      "Total number of non-empty search queries",
	})

	// SearchResults observes the pre-cap match count per query.
	SearchResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "smartstay",
		Name:      "search_results",
		Help:      "Matches scored per search query before the result cap",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	// SearchDegradedTotal counts collection reads the engine soft-failed.
	SearchDegradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Name:      "search_degraded_reads_total",
		Help:      "Record store reads the search engine degraded to empty",
	}, []string{"collection"})

	// AuthDenialsTotal counts authorization denials by reason.
	AuthDenialsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Name:      "auth_denials_total",
		Help:      "Authorization denials by reason",
	}, []string{"reason"})
)

// RegisterCoreMetrics registers the search and auth collectors. Called
// explicitly from the composition root (no init()).
func RegisterCoreMetrics() {
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SearchDegradedTotal)
	prometheus.MustRegister(AuthDenialsTotal)
}
