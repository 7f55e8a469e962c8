package bufferpool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tuannm99/novapool/internal/storage"
)

func TestSnapshot_String(t *testing.T) {
	s := Snapshot{
		FrameContents: []storage.PageNumber{6, 4, storage.NoPage},
		DirtyFlags:    []bool{true, false, false},
		FixCounts:     []int{0, 1, 0},
	}
	require.Equal(t, "[6x0],[4 1],[-1 0]", s.String())
	require.Empty(t, Snapshot{}.String())
}

func TestStrategy_ParseAndString(t *testing.T) {
	cases := map[string]Strategy{
		"fifo":  StrategyFIFO,
		"LRU":   StrategyLRU,
		"clock": StrategyClock,
		"lfu":   StrategyLFU,
		"lru_k": StrategyLRUK,
		"LRU-K": StrategyLRUK,
	}
	for in, want := range cases {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	_, err := ParseStrategy("random")
	require.ErrorIs(t, err, ErrUnknownStrategy)

	require.Equal(t, "LRU-K", StrategyLRUK.String())
	require.Equal(t, "Strategy(9)", Strategy(9).String())
	require.False(t, Strategy(9).Valid())
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestPool_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	pool, _ := newTestPool(t, 1, StrategyFIFO, WithMeter(provider.Meter("novapool")))

	pinDirtyUnpin(t, pool, 0)
	pinUnpin(t, pool, 0)
	pinUnpin(t, pool, 1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	require.Equal(t, int64(2), counterValue(t, rm, "novapool.reads"))
	require.Equal(t, int64(1), counterValue(t, rm, "novapool.writes"))
	require.Equal(t, int64(1), counterValue(t, rm, "novapool.hits"))
	require.Equal(t, int64(2), counterValue(t, rm, "novapool.misses"))
	require.Equal(t, int64(1), counterValue(t, rm, "novapool.evictions"))
}

func TestPool_LogsUnpinUnderflow(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pool, _ := newTestPool(t, 2, StrategyLRU, WithLogger(zap.New(core)))

	pinUnpin(t, pool, 0)
	require.NoError(t, pool.Unpin(0))
	require.Equal(t, []int{0, 0}, pool.FixCounts())

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	require.Equal(t, "unpin of unpinned page", warns[0].Message)

	require.NotZero(t, logs.FilterMessage("pin miss").Len())
	require.NotZero(t, logs.FilterMessage("buffer pool initialized").Len())
}
