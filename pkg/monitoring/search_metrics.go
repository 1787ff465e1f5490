/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: search_metrics.go
Description: Prometheus metrics for the style search engine -- cache hit rate,
evaluation throughput, and search convergence.
*/

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetrics bundles every Prometheus collector the search engine
// reports to. Construct one per process and register it with whatever
// registry the CLI wires up (defaults to prometheus.DefaultRegisterer).
type SearchMetrics struct {
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter
	SearchRoundsTotal  *prometheus.CounterVec
	BestDistance       *prometheus.GaugeVec
}

// NewSearchMetrics constructs and registers every collector against reg. A
// nil reg registers against prometheus.DefaultRegisterer, matching the
// common case of a single process-wide registry.
func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &SearchMetrics{
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whatstyle",
			Name:      "evaluations_total",
			Help:      "Total number of (style, source file) evaluations dispatched to the evaluator.",
		}, []string{"formatter", "outcome"}),

		EvaluationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "whatstyle",
			Name:      "evaluation_duration_seconds",
			Help:      "Latency of a single formatter invocation plus diff computation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"formatter"}),

		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "whatstyle",
			Name:      "cache_hits_total",
			Help:      "Total Evaluation Cache hits.",
		}),

		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "whatstyle",
			Name:      "cache_misses_total",
			Help:      "Total Evaluation Cache misses.",
		}),

		SearchRoundsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whatstyle",
			Name:      "search_rounds_total",
			Help:      "Total search rounds run, by phase.",
		}, []string{"phase"}),

		BestDistance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "whatstyle",
			Name:      "best_aggregate_distance",
			Help:      "Aggregate distance of the current leading candidate, by phase.",
		}, []string{"phase"}),
	}

	reg.MustRegister(
		m.EvaluationsTotal,
		m.EvaluationDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.SearchRoundsTotal,
		m.BestDistance,
	)

	return m
}

// ObserveCacheStats updates the cumulative cache-hit/miss counters from a
// (hits, misses) snapshot, such as returned by pkg/cache.Cache.Stats.
// Callers pass deltas (this sample minus the last sample) since Prometheus
// counters are monotonic.
func (m *SearchMetrics) ObserveCacheStats(hitsDelta, missesDelta int64) {
	if hitsDelta > 0 {
		m.CacheHitsTotal.Add(float64(hitsDelta))
	}
	if missesDelta > 0 {
		m.CacheMissesTotal.Add(float64(missesDelta))
	}
}
