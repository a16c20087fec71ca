package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	ServiceName = "shelterstats"
	MeterName   = "shelterstats"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	EnableMetrics  bool
	SampleRatio    float64
	// TraceWriter receives the JSON span stream when tracing is enabled.
	TraceWriter io.Writer
}

// OTelProviders holds the OpenTelemetry providers for one run. Tracer and
// Meter are always usable; they are no-ops when the feature is disabled.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: "dev",
		Environment:    "development",
		EnableTracing:  false,
		EnableMetrics:  true,
		SampleRatio:    1.0,
	}
}

// InitializeOTel sets up tracing and metrics for a batch run. Providers are
// not installed globally; callers pass them explicitly.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()
	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := createResource(cfg)

	providers := &OTelProviders{
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
		Logger: logger,
	}

	if cfg.EnableTracing {
		if err := initializeTracing(cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

// initializeTracing writes spans as JSON to cfg.TraceWriter
func initializeTracing(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	w := cfg.TraceWriter
	if w == nil {
		w = io.Discard
	}
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	return nil
}

// initializeMetrics registers the OTel Prometheus exporter on a private
// registry that is later dumped with WriteMetricsTextfile
func initializeMetrics(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	return nil
}

// WriteMetricsTextfile writes every collected metric in the Prometheus text
// exposition format, for a node exporter textfile collector. It must run
// before Shutdown.
func (p *OTelProviders) WriteMetricsTextfile(path string) error {
	if p.Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, p.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	p.Logger.Info("Metrics textfile written", slog.String("path", path))
	return nil
}

// PipelineMetrics holds the instruments recorded during a run
type PipelineMetrics struct {
	RowsLoaded        metric.Int64Counter
	CellsZeroFilled   metric.Int64Counter
	OutliersCorrected metric.Int64Counter
	ChartsRendered    metric.Int64Counter
	StepDuration      metric.Float64Histogram
	StepFailures      metric.Int64Counter
}

// CreatePipelineMetrics creates the run's instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"shelter_rows_loaded",
		metric.WithDescription("Rows read from each source workbook"),
	)
	if err != nil {
		return nil, err
	}

	cellsZeroFilled, err := meter.Int64Counter(
		"shelter_cells_zero_filled",
		metric.WithDescription("Missing or NaN placeholder cells replaced with zero"),
	)
	if err != nil {
		return nil, err
	}

	outliersCorrected, err := meter.Int64Counter(
		"shelter_outliers_corrected",
		metric.WithDescription("Cells replaced by the outlier correction"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"shelter_charts_rendered",
		metric.WithDescription("Chart files written"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"shelter_step_duration_seconds",
		metric.WithDescription("Pipeline step duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stepFailures, err := meter.Int64Counter(
		"shelter_step_failures",
		metric.WithDescription("Pipeline steps that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsLoaded:        rowsLoaded,
		CellsZeroFilled:   cellsZeroFilled,
		OutliersCorrected: outliersCorrected,
		ChartsRendered:    chartsRendered,
		StepDuration:      stepDuration,
		StepFailures:      stepFailures,
	}, nil
}

// RecordStep records the duration and outcome of one pipeline step
func (m *PipelineMetrics) RecordStep(ctx context.Context, stepID string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
		m.StepFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("step", stepID)))
	}
	m.StepDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("step", stepID),
		attribute.String("status", status),
	))
}

// RecordRows records the rows read from one source
func (m *PipelineMetrics) RecordRows(ctx context.Context, source string, rows int) {
	if m == nil {
		return
	}
	m.RowsLoaded.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("source", source)))
}

// RecordZeroFilled records cells replaced by the missing-value policy
func (m *PipelineMetrics) RecordZeroFilled(ctx context.Context, placeholders, missing int) {
	if m == nil {
		return
	}
	m.CellsZeroFilled.Add(ctx, int64(placeholders), metric.WithAttributes(attribute.String("kind", "placeholder")))
	m.CellsZeroFilled.Add(ctx, int64(missing), metric.WithAttributes(attribute.String("kind", "missing")))
}

// RecordOutliers records cells replaced by the outlier correction
func (m *PipelineMetrics) RecordOutliers(ctx context.Context, cells int) {
	if m == nil {
		return
	}
	m.OutliersCorrected.Add(ctx, int64(cells))
}

// RecordChart records one chart file written
func (m *PipelineMetrics) RecordChart(ctx context.Context, file string) {
	if m == nil {
		return
	}
	m.ChartsRendered.Add(ctx, 1, metric.WithAttributes(attribute.String("file", file)))
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts the OTel trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// AddSpanEvent adds an event to the current span with attributes
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
