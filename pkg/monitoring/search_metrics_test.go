package monitoring_test

import (
	"testing"

	"github.com/kleascm/whatstyle-go/pkg/monitoring"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchMetricsRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := monitoring.NewSearchMetrics(reg)
	require.NotNil(t, m)

	// Vec collectors only show up in Gather output once a child exists.
	m.EvaluationsTotal.WithLabelValues("indent", "converged")
	m.EvaluationDuration.WithLabelValues("indent")
	m.SearchRoundsTotal.WithLabelValues("standard")
	m.BestDistance.WithLabelValues("standard")

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"whatstyle_evaluations_total",
		"whatstyle_evaluation_duration_seconds",
		"whatstyle_cache_hits_total",
		"whatstyle_cache_misses_total",
		"whatstyle_search_rounds_total",
		"whatstyle_best_aggregate_distance",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestObserveCacheStatsIncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := monitoring.NewSearchMetrics(reg)

	m.ObserveCacheStats(5, 2)
	m.ObserveCacheStats(0, 0)

	assert.Equal(t, float64(5), testCounterValue(t, m.CacheHitsTotal))
	assert.Equal(t, float64(2), testCounterValue(t, m.CacheMissesTotal))
}

func testCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, c.Write(&metric))
	return metric.GetCounter().GetValue()
}
