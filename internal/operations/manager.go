package operations

import (
	"context"
	"log/slog"
	"time"

	"github.com/sganes21/Dataset-Final-Project/internal/infrastructure"
)

// Manager runs the registered steps one after another in dependency order.
// The first failing step stops the run; the steps after it are skipped.
type Manager struct {
	registry *Registry
	tracer   *StepTracer
	logger   *slog.Logger
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithTracer instruments each step with a span and metrics
func WithTracer(t *StepTracer) ManagerOption {
	return func(m *Manager) {
		if t != nil {
			m.tracer = t
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager over registry
func NewManager(registry *Registry, opts ...ManagerOption) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	m := &Manager{
		registry: registry,
		tracer:   NewStepTracer(nil, nil),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(slog.String("component", "operations"))
	return m
}

// Run executes every registered step against state. A nil state starts a
// fresh run. The returned error is an *OperationError naming the step.
func (m *Manager) Run(ctx context.Context, state *RunState) (*RunState, error) {
	if state == nil {
		state = NewRunState("")
	}

	steps, err := m.registry.DependencyOrder()
	if err != nil {
		m.logger.ErrorContext(ctx, "Invalid step graph",
			slog.String("run_id", state.ID),
			slog.String("error", err.Error()))
		state.Fail(err)
		return state, err
	}

	for _, step := range steps {
		state.AddStep(NewStepState(step.ID(), step.Name()))
	}

	ctx, runSpan := m.tracer.TraceRun(ctx, state.ID, len(steps))
	state.Start()
	m.logger.InfoContext(ctx, "Run started",
		slog.String("run_id", state.ID),
		slog.String("otel_trace_id", infrastructure.TraceIDFromContext(ctx)),
		slog.Int("step_count", len(steps)))

	err = m.executeSequential(ctx, state, steps)
	m.tracer.FinishRun(ctx, runSpan, err)

	switch {
	case err == nil:
		state.Complete()
		m.logger.InfoContext(ctx, "Run completed",
			slog.String("run_id", state.ID),
			slog.Duration("duration", state.Duration()))
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel(err)
		m.logger.WarnContext(ctx, "Run cancelled",
			slog.String("run_id", state.ID),
			slog.String("step", FailedStep(err)))
	default:
		state.Fail(err)
		m.logger.ErrorContext(ctx, "Run failed",
			slog.String("run_id", state.ID),
			slog.String("step", FailedStep(err)),
			slog.String("error", err.Error()))
	}
	return state, err
}

func (m *Manager) executeSequential(ctx context.Context, state *RunState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			skipRemaining(state, steps[i:], "run cancelled")
			return NewCancellationError(step.ID(), err)
		}

		stepState := state.Step(step.ID())
		stepState.Start()
		m.logger.InfoContext(ctx, "Step started",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(steps)))

		stepCtx, span := m.tracer.TraceStep(ctx, state.ID, step)
		start := time.Now()
		err := step.Execute(stepCtx, state)
		duration := time.Since(start)
		m.tracer.FinishStep(stepCtx, span, step.ID(), duration, err)

		if err != nil {
			stepState.Fail(err)
			skipRemaining(state, steps[i+1:], "previous step "+step.ID()+" failed")
			if ctx.Err() != nil {
				return NewCancellationError(step.ID(), err)
			}
			return NewExecutionError(step.ID(), err)
		}

		stepState.Complete()
		m.logger.InfoContext(ctx, "Step completed",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", duration))
	}
	return nil
}

func skipRemaining(state *RunState, steps []Step, reason string) {
	for _, s := range steps {
		if st := state.Step(s.ID()); st != nil {
			st.Skip(reason)
		}
	}
}
