package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/mampirjaya/backoffice/internal/infrastructure/config"
	"github.com/mampirjaya/backoffice/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, telemetry.Config{ServiceName: "backoffice"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tel.Tracer.IsEnabled())
	assert.False(t, tel.Profiler.IsRunning())
	assert.NotNil(t, tel.Meter.Meter("test"))
	assert.Nil(t, tel.Logs.Core("test"))

	base := zap.NewNop()
	assert.Same(t, base, tel.Logs.Attach(base, "test"))

	require.NoError(t, tel.Shutdown(ctx))
}

func TestNewProfiler_RequiresEndpoint(t *testing.T) {
	_, err := telemetry.NewProfiler(telemetry.Config{ProfilingEnabled: true}, zap.NewNop())
	assert.Error(t, err)
}

func TestProfiler_StopIdempotent(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestWithProfilingLabels_RunsCallback(t *testing.T) {
	called := false
	telemetry.WithProfilingLabels(context.Background(), func(context.Context) {
		called = true
	}, "order_kind", "sale")
	assert.True(t, called)
}

func TestFromConfig(t *testing.T) {
	cfg := telemetry.FromConfig(config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "otel:4317",
		SamplingRatio:     0.5,
		ServiceName:       "backoffice",
		MetricsEnabled:    true,
		MetricsInterval:   15 * time.Second,
	}, "1.2.3")

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "otel:4317", cfg.CollectorEndpoint)
	assert.Equal(t, 0.5, cfg.SamplingRatio)
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	assert.Equal(t, 15*time.Second, cfg.MetricsInterval)
}

func TestNewDBTracingPlugin(t *testing.T) {
	assert.Nil(t, telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{}))

	plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{Enabled: true, DBName: "backoffice"})
	require.NotNil(t, plugin)
	assert.Equal(t, "otelgorm", plugin.Name())
}
