package bufferpool

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// poolMetrics holds the counters the pool records on every physical I/O and lookup.
type poolMetrics struct {
	reads     metric.Int64Counter
	writes    metric.Int64Counter
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter

	attrs metric.MeasurementOption
}

func newPoolMetrics(meter metric.Meter) (*poolMetrics, error) {
	reads, err := meter.Int64Counter(
		"novapool.reads",
		metric.WithDescription("Blocks read from the page file."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	writes, err := meter.Int64Counter(
		"novapool.writes",
		metric.WithDescription("Blocks written back to the page file."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	hits, err := meter.Int64Counter(
		"novapool.hits",
		metric.WithDescription("Pin requests served from a resident frame."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"novapool.misses",
		metric.WithDescription("Pin requests that had to load the page."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"novapool.evictions",
		metric.WithDescription("Resident pages evicted to make room."),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	return &poolMetrics{
		reads:     reads,
		writes:    writes,
		hits:      hits,
		misses:    misses,
		evictions: evictions,
		attrs:     metric.WithAttributes(),
	}, nil
}

func noopPoolMetrics() *poolMetrics {
	m, _ := newPoolMetrics(noop.NewMeterProvider().Meter(""))
	return m
}

func (m *poolMetrics) withStrategy(s Strategy) {
	m.attrs = metric.WithAttributes(attribute.String("strategy", s.String()))
}

func (m *poolMetrics) add(c metric.Int64Counter) {
	c.Add(context.Background(), 1, m.attrs)
}
