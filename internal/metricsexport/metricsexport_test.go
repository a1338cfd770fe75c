package metricsexport

import (
	"testing"

	"github.com/luxfi/geth/metrics"
	"github.com/stretchr/testify/require"
)

func TestGatherCounterAndGauge(t *testing.T) {
	registry := metrics.NewRegistry()
	counter := metrics.NewRegisteredCounter("arb_opportunities_total", registry)
	counter.Inc(3)
	gauge := metrics.NewRegisteredGauge("arb_worker_inflight", registry)
	gauge.Update(7)

	g := NewGatherer(registry)
	mfs, err := g.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 2)

	names := make([]string, len(mfs))
	for i, mf := range mfs {
		names[i] = mf.GetName()
	}
	require.ElementsMatch(t, []string{"arb_opportunities_total", "arb_worker_inflight"}, names)
}

func TestGatherSkipsNilMetric(t *testing.T) {
	registry := metrics.NewRegistry()
	_, err := metricFamily(registry, "does-not-exist")
	require.ErrorIs(t, err, errMetricSkip)
}
