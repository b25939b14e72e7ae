package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Catalog fetch metrics
var (
	CatalogFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetches_total",
			Help: "Total number of catalog loads by outcome (success, error, not_modified).",
		},
		[]string{"status"},
	)

	CatalogStaleResponsesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_stale_responses_total",
			Help: "Catalog loads discarded because a newer load was started.",
		},
	)

	CatalogShows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_shows",
			Help: "Number of shows in the current catalog snapshot.",
		},
	)

	CatalogFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Duration of catalog HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		CatalogFetchesTotal,
		CatalogStaleResponsesTotal,
		CatalogShows,
		CatalogFetchDuration,
	)
}
