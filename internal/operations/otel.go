package operations

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/sganes21/Dataset-Final-Project/internal/infrastructure"
)

// StepTracer provides OpenTelemetry instrumentation for pipeline runs
type StepTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewStepTracer creates a tracer. Either argument may be nil.
func NewStepTracer(tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *StepTracer {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}
	return &StepTracer{tracer: tracer, metrics: metrics}
}

// TraceRun creates a span for the entire run
func (st *StepTracer) TraceRun(ctx context.Context, runID string, steps int) (context.Context, trace.Span) {
	return st.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("run.steps", steps),
		),
	)
}

// TraceStep creates a span for one step
func (st *StepTracer) TraceStep(ctx context.Context, runID string, step Step) (context.Context, trace.Span) {
	return st.tracer.Start(ctx, "pipeline.step."+step.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
}

// FinishStep records the outcome on the span and in the metrics, then ends
// the span
func (st *StepTracer) FinishStep(ctx context.Context, span trace.Span, stepID string, duration time.Duration, err error) {
	if err != nil {
		infrastructure.RecordError(ctx, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.SetAttributes(attribute.Float64("step.duration_seconds", duration.Seconds()))
	st.metrics.RecordStep(ctx, stepID, duration, err)
	span.End()
}

// FinishRun ends the run span. ctx must carry the span from TraceRun.
func (st *StepTracer) FinishRun(ctx context.Context, span trace.Span, err error) {
	if err != nil {
		infrastructure.RecordError(ctx, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
