package operations

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sganes21/Dataset-Final-Project/internal/dataprocessing"
	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// RunStatus represents the overall run status
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// RunState is the data shared by the steps of one run: the named tables
// they produce and consume, the cleaning report and the files written.
type RunState struct {
	mu sync.RWMutex

	ID        string
	Status    RunStatus
	StartTime time.Time
	EndTime   *time.Time
	Error     error

	steps   map[string]*StepState
	order   []string
	frames  map[string]*frame.Frame
	report  *dataprocessing.CleaningReport
	outputs []string
}

// NewRunState creates a run with a random ID when id is empty
func NewRunState(id string) *RunState {
	if id == "" {
		id = uuid.New().String()
	}
	return &RunState{
		ID:     id,
		Status: RunStatusPending,
		steps:  make(map[string]*StepState),
		frames: make(map[string]*frame.Frame),
	}
}

// Start marks the run as running
func (s *RunState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = RunStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the run as completed
func (s *RunState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusCompleted
}

// Fail marks the run as failed
func (s *RunState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusFailed
	s.Error = err
}

// Cancel marks the run as cancelled
func (s *RunState) Cancel(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusCancelled
	s.Error = err
}

// Duration returns how long the run took, or has taken so far
func (s *RunState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}

// AddStep records the state of a step that is part of the run
func (s *RunState) AddStep(state *StepState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.steps[state.ID]; !exists {
		s.order = append(s.order, state.ID)
	}
	s.steps[state.ID] = state
}

// Step returns the state of a specific step
func (s *RunState) Step(id string) *StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.steps[id]
}

// Steps returns the step states in execution order
func (s *RunState) Steps() []*StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*StepState, len(s.order))
	for i, id := range s.order {
		out[i] = s.steps[id]
	}
	return out
}

// SetFrame stores a named table
func (s *RunState) SetFrame(name string, f *frame.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[name] = f
}

// Frame returns a named table or a not-found error
func (s *RunState) Frame(name string) (*frame.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.frames[name]
	if !ok || f == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("table %q", name))
	}
	return f, nil
}

// SetReport stores the cleaning report
func (s *RunState) SetReport(r *dataprocessing.CleaningReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
}

// Report returns the cleaning report, nil before the clean step ran
func (s *RunState) Report() *dataprocessing.CleaningReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// AddOutput records a file written by the run
func (s *RunState) AddOutput(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs = append(s.outputs, path)
}

// Outputs returns every file written, in order
func (s *RunState) Outputs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.outputs))
	copy(out, s.outputs)
	return out
}
