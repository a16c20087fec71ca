package operations_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/sganes21/Dataset-Final-Project/internal/dataprocessing"
	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
	"github.com/sganes21/Dataset-Final-Project/internal/operations"
	"github.com/sganes21/Dataset-Final-Project/internal/operations/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManagerRun(t *testing.T) {
	rec := &testutil.Recorder{}
	load := testutil.NewMockStep(rec, "load")
	load.Fn = func(_ context.Context, s *operations.RunState) error {
		s.SetFrame("raw", frame.MustNew(frame.NewSeries("a", []any{int64(1)})))
		return nil
	}
	clean := testutil.NewMockStep(rec, "clean", "load")
	clean.Fn = func(_ context.Context, s *operations.RunState) error {
		f, err := s.Frame("raw")
		if err != nil {
			return err
		}
		s.SetFrame("combined", f)
		s.SetReport(&dataprocessing.CleaningReport{YearsDerived: 1})
		s.AddOutput("combined.csv")
		return nil
	}

	registry := operations.NewRegistry().MustRegister(clean, load)
	m := operations.NewManager(registry, operations.WithLogger(quietLogger()))

	state, err := m.Run(context.Background(), operations.NewRunState("run-1"))
	require.NoError(t, err)

	assert.Equal(t, []string{"load", "clean"}, rec.IDs())
	assert.Equal(t, operations.RunStatusCompleted, state.Status)
	assert.Equal(t, "run-1", state.ID)
	assert.Equal(t, []string{"combined.csv"}, state.Outputs())
	assert.Equal(t, 1, state.Report().YearsDerived)

	combined, err := state.Frame("combined")
	require.NoError(t, err)
	assert.Equal(t, 1, combined.NumRows())

	steps := state.Steps()
	require.Len(t, steps, 2)
	for _, s := range steps {
		assert.Equal(t, operations.StepStatusCompleted, s.CurrentStatus())
		assert.NotNil(t, s.StartTime)
		assert.NotNil(t, s.EndTime)
	}
}

func TestManagerRun_StopsAtFirstFailure(t *testing.T) {
	rec := &testutil.Recorder{}
	cause := apperrors.NewMergeError("key column missing", nil)
	registry := operations.NewRegistry().MustRegister(
		testutil.NewMockStep(rec, "load"),
		testutil.NewMockStep(rec, "merge", "load").Failing(cause),
		testutil.NewMockStep(rec, "clean", "merge"),
		testutil.NewMockStep(rec, "chart", "clean"),
	)

	state, err := operations.NewManager(registry, operations.WithLogger(quietLogger())).Run(context.Background(), nil)
	require.Error(t, err)
	assert.NotEmpty(t, state.ID)

	assert.Equal(t, []string{"load", "merge"}, rec.IDs())
	assert.Equal(t, operations.ErrorTypeExecution, operations.GetErrorType(err))
	assert.Equal(t, "merge", operations.FailedStep(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperrors.ErrTypeMerge, apperrors.TypeOf(err))

	assert.Equal(t, operations.RunStatusFailed, state.Status)
	assert.Equal(t, operations.StepStatusCompleted, state.Step("load").CurrentStatus())
	assert.Equal(t, operations.StepStatusFailed, state.Step("merge").CurrentStatus())
	assert.Equal(t, operations.StepStatusSkipped, state.Step("clean").CurrentStatus())
	assert.Equal(t, operations.StepStatusSkipped, state.Step("chart").CurrentStatus())
	assert.Contains(t, state.Step("chart").Message, "merge")
}

func TestManagerRun_Cancelled(t *testing.T) {
	rec := &testutil.Recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	first := testutil.NewMockStep(rec, "first")
	first.Fn = func(context.Context, *operations.RunState) error {
		cancel()
		return nil
	}
	registry := operations.NewRegistry().MustRegister(first, testutil.NewMockStep(rec, "second"))

	state, err := operations.NewManager(registry, operations.WithLogger(quietLogger())).Run(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, operations.ErrorTypeCancellation, operations.GetErrorType(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"first"}, rec.IDs())
	assert.Equal(t, operations.RunStatusCancelled, state.Status)
	assert.Equal(t, operations.StepStatusSkipped, state.Step("second").CurrentStatus())
}

func TestManagerRun_InvalidGraph(t *testing.T) {
	registry := operations.NewRegistry().MustRegister(testutil.NewMockStep(nil, "a", "missing"))
	state, err := operations.NewManager(registry, operations.WithLogger(quietLogger())).Run(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, operations.ErrorTypeDependency, operations.GetErrorType(err))
	assert.Equal(t, operations.RunStatusFailed, state.Status)
}

func TestManagerRun_SpanPerStep(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	registry := operations.NewRegistry().MustRegister(
		testutil.NewMockStep(nil, "load"),
		testutil.NewMockStep(nil, "export", "load").Failing(errors.New("disk full")),
	)
	m := operations.NewManager(registry,
		operations.WithLogger(quietLogger()),
		operations.WithTracer(operations.NewStepTracer(tp.Tracer("test"), nil)),
	)
	_, err := m.Run(context.Background(), nil)
	require.Error(t, err)

	var names []string
	for _, s := range exporter.GetSpans() {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"pipeline.step.load", "pipeline.step.export", "pipeline.run"}, names)

	for _, s := range exporter.GetSpans() {
		if s.Name == "pipeline.step.export" {
			require.Len(t, s.Events, 1)
			assert.Equal(t, "exception", s.Events[0].Name)
		}
	}
}

func TestRunState_FrameNotFound(t *testing.T) {
	state := operations.NewRunState("")
	assert.NotEmpty(t, state.ID)
	assert.Nil(t, state.Report())
	assert.Zero(t, state.Duration())

	_, err := state.Frame("combined")
	assert.Equal(t, apperrors.ErrTypeNotFound, apperrors.TypeOf(err))
}

func TestStepState_Lifecycle(t *testing.T) {
	s := operations.NewStepState("load", "Load")
	assert.Equal(t, operations.StepStatusPending, s.Status)
	assert.Zero(t, s.Duration())

	s.Start()
	assert.Equal(t, operations.StepStatusActive, s.CurrentStatus())
	s.Fail(errors.New("boom"))
	assert.Equal(t, operations.StepStatusFailed, s.CurrentStatus())
	assert.EqualError(t, s.Error, "boom")
	assert.GreaterOrEqual(t, s.Duration().Nanoseconds(), int64(0))
}

func TestFuncStep(t *testing.T) {
	called := false
	step := operations.NewFuncStep("x", "X", func(context.Context, *operations.RunState) error {
		called = true
		return nil
	}, "dep")
	assert.Equal(t, []string{"dep"}, step.Dependencies())
	require.NoError(t, step.Execute(context.Background(), operations.NewRunState("")))
	assert.True(t, called)

	assert.NoError(t, operations.NewFuncStep("noop", "Noop", nil).Execute(context.Background(), nil))
}
