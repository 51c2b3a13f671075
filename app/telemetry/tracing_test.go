package telemetry

import (
	"context"
	"errors"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDisabledProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	require.NoError(t, err)
	require.NoError(t, p.HealthCheck())

	ctx := context.Background()
	got, finish := p.StartMessage(ctx, "MsgSwap", 1)
	require.Equal(t, ctx, got)
	finish(nil)
	require.NoError(t, p.Shutdown(ctx))

	var nilProvider *Provider
	_, finish = nilProvider.StartMessage(ctx, "MsgSwap", 1)
	finish(errors.New("ignored"))
	require.NoError(t, nilProvider.Shutdown(ctx))
}

func TestInvalidConfig(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, SampleRate: 1.5})
	require.ErrorContains(t, err, "sample rate")
}

func TestStartMessageRecordsSpansAndMetrics(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	registry := promclient.NewRegistry()

	p, err := NewProvider(Config{
		Enabled:           true,
		SampleRate:        1,
		Environment:       "test",
		PrometheusEnabled: true,
		Registerer:        registry,
	}, tracesdk.WithSpanProcessor(recorder))
	require.NoError(t, err)
	require.NoError(t, p.HealthCheck())
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	_, finish := p.StartMessage(context.Background(), "*types.MsgSwap", 5)
	finish(nil)
	_, finish = p.StartMessage(context.Background(), "*types.MsgAddLiquidity", 6)
	finish(errors.New("not enough balance"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "message.deliver", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Equal(t, "not enough balance", spans[1].Status().Description)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range families {
		require.NotContains(t, mf.GetName(), ".")
		names[mf.GetName()] = true
	}
	require.True(t, names["amm_messages_total"], "message counter not exported")
	require.True(t, names["amm_message_duration_milliseconds"], "message duration not exported")
}
