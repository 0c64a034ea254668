// Package metrics defines the Prometheus metric collectors used across the
// search server and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search result types recorded by SearchQueriesTotal.
const (
	ResultHit        = "hit"
	ResultZeroResult = "zero_result"
	ResultError      = "error"
)

// Metrics holds all Prometheus collectors for the search server.
type Metrics struct {
	DocsIndexedTotal       prometheus.Counter
	DocsRemovedTotal       prometheus.Counter
	DocsRejectedTotal      prometheus.Counter
	DocumentCount          prometheus.Gauge
	SearchQueriesTotal     *prometheus.CounterVec
	SearchLatency          prometheus.Histogram
	SearchResultsCount     prometheus.Histogram
	BatchQueriesTotal      prometheus.Counter
	CacheHitsTotal         prometheus.Counter
	CacheMissesTotal       prometheus.Counter
	DuplicatesRemovedTotal prometheus.Counter
	NoResultRequests       prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates all collectors and registers them with a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry creates all collectors and registers them with reg. The
// gatherer is used by Handler.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents added to the index.",
			},
		),
		DocsRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_removed_total",
				Help: "Total documents removed from the index.",
			},
		),
		DocsRejectedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_rejected_total",
				Help: "Total documents rejected as invalid.",
			},
		),
		DocumentCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_document_count",
				Help: "Number of live documents in the index.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by result type (hit, zero_result, error).",
			},
			[]string{"result_type"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		BatchQueriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "batch_queries_total",
				Help: "Total queries evaluated through the parallel batch processor.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of result cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of result cache misses.",
			},
		),
		DuplicatesRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "duplicates_removed_total",
				Help: "Total duplicate documents removed.",
			},
		),
		NoResultRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "no_result_requests",
				Help: "Requests inside the sliding window that returned no documents.",
			},
		),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.DocsIndexedTotal,
		m.DocsRemovedTotal,
		m.DocsRejectedTotal,
		m.DocumentCount,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.BatchQueriesTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.DuplicatesRemovedTotal,
		m.NoResultRequests,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for this Metrics' registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
