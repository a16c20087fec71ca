package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func TestOTelInitialization_Defaults(t *testing.T) {
	providers, err := InitializeOTel(nil, NewLogger(io.Discard, "error"))
	require.NoError(t, err)
	require.NotNil(t, providers)

	// tracing is off by default but the tracer is still usable
	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	_, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()

	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Registry)

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelInitialization_AllDisabled(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, NewLogger(io.Discard, "error"))
	require.NoError(t, err)
	assert.Nil(t, providers.Registry)
	assert.NotNil(t, providers.Meter)

	// no registry means nothing to write
	require.NoError(t, providers.WriteMetricsTextfile(filepath.Join(t.TempDir(), "m.prom")))

	_, err = CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)
}

func TestTracing_WritesSpans(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.EnableTracing = true
	cfg.EnableMetrics = false
	cfg.TraceWriter = &buf

	providers, err := InitializeOTel(cfg, NewLogger(io.Discard, "error"))
	require.NoError(t, err)

	ctx, span := providers.Tracer.Start(context.Background(), "pipeline.step.merge")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	AddSpanEvent(ctx, "rows_merged", attribute.Int("rows", 12))
	RecordError(ctx, errors.New("boom"))
	span.End()

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, providers.Shutdown(ctx2))

	out := buf.String()
	assert.Contains(t, out, "pipeline.step.merge")
	assert.Contains(t, out, "rows_merged")
	assert.Contains(t, out, "boom")
}

func TestTraceIDFromContext_NoSpan(t *testing.T) {
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
	// helpers are safe without a recording span
	AddSpanEvent(context.Background(), "ignored")
	RecordError(context.Background(), errors.New("ignored"))
}

func TestPipelineMetrics_Textfile(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), NewLogger(io.Discard, "error"))
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	m, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	m.RowsLoaded.Add(ctx, 42, metric.WithAttributes(attribute.String("source", "state_export")))
	m.CellsZeroFilled.Add(ctx, 7)
	m.RecordStep(ctx, "merge", 250*time.Millisecond, nil)
	m.RecordStep(ctx, "render", time.Second, errors.New("no data"))
	m.RecordZeroFilled(ctx, 2, 5)
	m.RecordOutliers(ctx, 1)
	m.RecordChart(ctx, "Top_10_Shelters.png")

	path := filepath.Join(t.TempDir(), "shelterstats.prom")
	require.NoError(t, providers.WriteMetricsTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "shelter_rows_loaded")
	assert.Contains(t, text, `source="state_export"`)
	assert.Contains(t, text, "shelter_cells_zero_filled")
	assert.Contains(t, text, "shelter_step_duration_seconds")
	assert.Contains(t, text, "shelter_step_failures")
	assert.Contains(t, text, `step="render"`)
	assert.Contains(t, text, `kind="missing"`)
	assert.Contains(t, text, "shelter_outliers_corrected")
	assert.Contains(t, text, `file="Top_10_Shelters.png"`)
}

func TestPipelineMetrics_NilSafe(t *testing.T) {
	var m *PipelineMetrics
	ctx := context.Background()
	m.RecordStep(ctx, "x", time.Second, nil)
	m.RecordRows(ctx, "survey", 3)
	m.RecordZeroFilled(ctx, 1, 2)
	m.RecordOutliers(ctx, 1)
	m.RecordChart(ctx, "a.png")
}

func TestRuntimeMetrics_Collect(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), NewLogger(io.Discard, "error"))
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	rm, err := NewRuntimeMetrics(providers.Meter, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	stats := rm.Collect(context.Background())
	assert.Positive(t, stats.Goroutines)
	assert.Positive(t, stats.CPUCount)
	assert.GreaterOrEqual(t, stats.Uptime, time.Minute)
	assert.Len(t, stats.LogAttrs(), 8)

	path := filepath.Join(t.TempDir(), "runtime.prom")
	require.NoError(t, providers.WriteMetricsTextfile(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "runtime_goroutines")
	assert.Contains(t, string(content), "process_uptime_seconds")
}
