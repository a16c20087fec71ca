package operations

import (
	"context"
	"sync"
	"time"
)

// Step is one unit of a pipeline run
type Step interface {
	// ID returns the unique identifier for this Step
	ID() string

	// Name returns the human-readable name for this Step
	Name() string

	// Dependencies returns the IDs of steps that must complete before this Step
	Dependencies() []string

	// Execute runs the Step against the shared run state
	Execute(ctx context.Context, state *RunState) error
}

// StepStatus represents the current status of a Step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepState represents the runtime state of a Step
type StepState struct {
	mu        sync.RWMutex
	ID        string
	Name      string
	Status    StepStatus
	StartTime *time.Time
	EndTime   *time.Time
	Message   string
	Error     error
}

// NewStepState creates a new Step state with default values
func NewStepState(id, name string) *StepState {
	return &StepState{
		ID:     id,
		Name:   name,
		Status: StepStatusPending,
	}
}

// Start marks the Step as active and sets the start time
func (s *StepState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.StartTime = &now
	s.Status = StepStatusActive
}

// Complete marks the Step as completed and sets the end time
func (s *StepState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusCompleted
}

// Fail marks the Step as failed with the given error
func (s *StepState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusFailed
	s.Error = err
}

// Skip marks the Step as skipped with the given reason
func (s *StepState) Skip(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Status = StepStatusSkipped
	s.Message = reason
}

// CurrentStatus returns the status under the read lock
func (s *StepState) CurrentStatus() StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// Duration returns the duration of the Step execution
func (s *StepState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// BaseStep provides the identity half of a Step
type BaseStep struct {
	id           string
	name         string
	dependencies []string
}

// NewBaseStep creates a new base Step
func NewBaseStep(id, name string, dependencies ...string) BaseStep {
	if dependencies == nil {
		dependencies = []string{}
	}
	return BaseStep{
		id:           id,
		name:         name,
		dependencies: dependencies,
	}
}

// ID returns the Step ID
func (b BaseStep) ID() string { return b.id }

// Name returns the Step name
func (b BaseStep) Name() string { return b.name }

// Dependencies returns the Step dependencies
func (b BaseStep) Dependencies() []string { return b.dependencies }

// StepFunc is the body of a FuncStep
type StepFunc func(ctx context.Context, state *RunState) error

// FuncStep adapts a function to the Step interface
type FuncStep struct {
	BaseStep
	fn StepFunc
}

// NewFuncStep creates a Step that runs fn
func NewFuncStep(id, name string, fn StepFunc, dependencies ...string) *FuncStep {
	return &FuncStep{
		BaseStep: NewBaseStep(id, name, dependencies...),
		fn:       fn,
	}
}

// Execute runs the wrapped function
func (s *FuncStep) Execute(ctx context.Context, state *RunState) error {
	if s.fn == nil {
		return nil
	}
	return s.fn(ctx, state)
}
