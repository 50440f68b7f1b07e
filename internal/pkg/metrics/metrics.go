// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SearchesTotal counts wallet searches by outcome: "ok", "partial",
	// "empty", "invalid_input", "upstream_error".
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_search_requests_total",
			Help: "Total number of wallet search requests by outcome.",
		},
		[]string{"outcome"},
	)

	// SearchDuration observes end-to-end wallet search latency.
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "account_search_request_duration_seconds",
			Help:    "Wallet search request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// GroupFailuresTotal counts group-level evaluation failures recorded in
	// search results.
	GroupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "account_search_group_failures_total",
			Help: "Total number of per-group failures recorded in search results.",
		},
	)
)

// MustRegisterMetrics registers every collector with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(SearchesTotal, SearchDuration, GroupFailuresTotal)
}
