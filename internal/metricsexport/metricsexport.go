// Package metricsexport adapts a luxfi/geth/metrics registry into a
// prometheus.Gatherer, grounded on the teacher's
// metrics/prometheus/{prometheus,interfaces}.go. luxfi/geth is a direct
// teacher dependency (`_examples/luxfi-evm/go.mod` requires
// github.com/luxfi/geth v1.16.34), so the bot reuses its Counter/Gauge/
// Meter/Timer registry types directly rather than hand-rolling a
// metrics facade.
package metricsexport

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/luxfi/geth/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Registry is the narrow slice of metrics.Registry's behavior Gather
// needs, mirroring the teacher's own metrics/prometheus/interfaces.go
// rather than depending on the registry's fuller Register/Unregister
// surface.
type Registry interface {
	Each(func(string, any))
	Get(string) any
}

var _ Registry = (*metrics.StandardRegistry)(nil)

// Gatherer implements prometheus.Gatherer by walking a luxfi/geth
// metrics.Registry.
type Gatherer struct {
	registry Registry
}

var _ prometheus.Gatherer = (*Gatherer)(nil)

// NewGatherer wraps registry.
func NewGatherer(registry Registry) *Gatherer {
	return &Gatherer{registry: registry}
}

var (
	errMetricSkip             = errors.New("metric skipped")
	errMetricTypeNotSupported = errors.New("metric type not supported")
)

func ptrTo[T any](x T) *T { return &x }

// Gather implements prometheus.Gatherer.
func (g *Gatherer) Gather() ([]*dto.MetricFamily, error) {
	var names []string
	g.registry.Each(func(name string, i any) {
		names = append(names, name)
	})
	sort.Strings(names)

	mfs := make([]*dto.MetricFamily, 0, len(names))
	for _, name := range names {
		mf, err := metricFamily(g.registry, name)
		switch {
		case errors.Is(err, errMetricSkip):
			continue
		case err != nil:
			return nil, err
		}
		mfs = append(mfs, mf)
	}
	return mfs, nil
}

func metricFamily(registry Registry, name string) (*dto.MetricFamily, error) {
	metric := registry.Get(name)
	exportName := strings.ReplaceAll(name, "/", "_")
	if metric == nil {
		return nil, fmt.Errorf("%w: %q metric is nil", errMetricSkip, exportName)
	}

	switch m := metric.(type) {
	case *metrics.Counter:
		return &dto.MetricFamily{
			Name: &exportName,
			Type: dto.MetricType_COUNTER.Enum(),
			Metric: []*dto.Metric{{
				Counter: &dto.Counter{Value: ptrTo(float64(m.Snapshot().Count()))},
			}},
		}, nil

	case *metrics.CounterFloat64:
		return &dto.MetricFamily{
			Name: &exportName,
			Type: dto.MetricType_COUNTER.Enum(),
			Metric: []*dto.Metric{{
				Counter: &dto.Counter{Value: ptrTo(m.Snapshot().Count())},
			}},
		}, nil

	case *metrics.Gauge:
		return &dto.MetricFamily{
			Name: &exportName,
			Type: dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{
				Gauge: &dto.Gauge{Value: ptrTo(float64(m.Snapshot().Value()))},
			}},
		}, nil

	case *metrics.GaugeFloat64:
		return &dto.MetricFamily{
			Name: &exportName,
			Type: dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{
				Gauge: &dto.Gauge{Value: ptrTo(m.Snapshot().Value())},
			}},
		}, nil

	case *metrics.GaugeInfo:
		// GaugeInfo carries string labels, not a scalar; Prometheus has no
		// matching sample type, so it is always skipped.
		return nil, fmt.Errorf("%w: %q is a gauge_info", errMetricSkip, exportName)

	case metrics.Histogram:
		snapshot := m.Snapshot()
		if snapshot.Count() == 0 {
			return nil, fmt.Errorf("%w: %q histogram has no data", errMetricSkip, exportName)
		}
		quantiles := []float64{.5, .75, .95, .99, .999, .9999}
		thresholds := snapshot.Percentiles(quantiles)
		dtoQuantiles := make([]*dto.Quantile, len(quantiles))
		for i, q := range quantiles {
			dtoQuantiles[i] = &dto.Quantile{
				Quantile: ptrTo(q),
				Value:    ptrTo(thresholds[i]),
			}
		}
		return &dto.MetricFamily{
			Name: &exportName,
			Type: dto.MetricType_SUMMARY.Enum(),
			Metric: []*dto.Metric{{
				Summary: &dto.Summary{
					SampleCount: ptrTo(uint64(snapshot.Count())),
					SampleSum:   ptrTo(snapshot.Sum()),
					Quantile:    dtoQuantiles,
				},
			}},
		}, nil

	case *metrics.Meter:
		snapshot := m.Snapshot()
		return &dto.MetricFamily{
			Name: &exportName,
			Type: dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{
				Gauge: &dto.Gauge{Value: ptrTo(float64(snapshot.Count()))},
			}},
		}, nil

	case *metrics.Timer:
		snapshot := m.Snapshot()
		if snapshot.Count() == 0 {
			return nil, fmt.Errorf("%w: %q timer has no data", errMetricSkip, exportName)
		}
		quantiles := []float64{.5, .75, .95, .99, .999, .9999}
		thresholds := snapshot.Percentiles(quantiles)
		dtoQuantiles := make([]*dto.Quantile, len(quantiles))
		for i, q := range quantiles {
			dtoQuantiles[i] = &dto.Quantile{
				Quantile: ptrTo(q),
				Value:    ptrTo(thresholds[i] / float64(time.Millisecond)),
			}
		}
		return &dto.MetricFamily{
			Name: &exportName,
			Type: dto.MetricType_SUMMARY.Enum(),
			Metric: []*dto.Metric{{
				Summary: &dto.Summary{
					SampleCount: ptrTo(uint64(snapshot.Count())),
					SampleSum:   ptrTo(float64(snapshot.Sum())),
					Quantile:    dtoQuantiles,
				},
			}},
		}, nil

	case *metrics.ResettingTimer:
		snapshot := m.Snapshot()
		if snapshot.Count() == 0 {
			return nil, fmt.Errorf("%w: %q resetting timer has no data", errMetricSkip, exportName)
		}
		pcts := []float64{50, 95, 99}
		thresholds := snapshot.Percentiles(pcts)
		dtoQuantiles := make([]*dto.Quantile, len(pcts))
		for i, p := range pcts {
			dtoQuantiles[i] = &dto.Quantile{
				Quantile: ptrTo(p / 100.0),
				Value:    ptrTo(thresholds[i] / float64(time.Millisecond)),
			}
		}
		return &dto.MetricFamily{
			Name: &exportName,
			Type: dto.MetricType_SUMMARY.Enum(),
			Metric: []*dto.Metric{{
				Summary: &dto.Summary{
					SampleCount: ptrTo(uint64(snapshot.Count())),
					SampleSum:   ptrTo(snapshot.Mean() * float64(snapshot.Count()) / float64(time.Millisecond)),
					Quantile:    dtoQuantiles,
				},
			}},
		}, nil

	default:
		switch metric.(type) {
		case *metrics.UniformSample, *metrics.ResettingTimerSnapshot:
			return nil, fmt.Errorf("%w: %q is a sample/snapshot", errMetricSkip, exportName)
		case *metrics.Healthcheck:
			return nil, fmt.Errorf("%w: %q is a healthcheck", errMetricTypeNotSupported, exportName)
		case *metrics.EWMA:
			return nil, fmt.Errorf("%w: %q is an EWMA", errMetricTypeNotSupported, exportName)
		default:
			return nil, fmt.Errorf("%w: metric %q type %T", errMetricTypeNotSupported, exportName, metric)
		}
	}
}
