package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	tel, shutdown, err := New(Config{})
	require.NoError(t, err)
	require.NotNil(t, tel.Meter)
	require.Nil(t, tel.Handler)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, shutdown(context.Background()))

	// Nothing to serve.
	require.NoError(t, tel.Serve(context.Background(), ":0"))
}

func TestNew_EnabledExportsCounters(t *testing.T) {
	tel, shutdown, err := New(Config{Enabled: true, ServiceName: "novapool-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	counter, err := tel.Meter.Int64Counter("novapool.reads")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	srv := httptest.NewServer(tel.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "novapool_reads")
}

func TestNew_TwiceUsesSeparateRegistries(t *testing.T) {
	for range 2 {
		_, shutdown, err := New(Config{Enabled: true})
		require.NoError(t, err)
		require.NoError(t, shutdown(context.Background()))
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	tel, shutdown, err := New(Config{Enabled: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, tel.Serve(ctx, "127.0.0.1:0"))
}
