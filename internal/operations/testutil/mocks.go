// Package testutil provides step doubles for operations tests.
package testutil

import (
	"context"
	"sync"

	"github.com/sganes21/Dataset-Final-Project/internal/operations"
)

// Recorder collects step ids in the order they executed
type Recorder struct {
	mu  sync.Mutex
	ids []string
}

// Record appends id
func (r *Recorder) Record(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

// IDs returns the recorded ids
func (r *Recorder) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// MockStep is a configurable Step
type MockStep struct {
	operations.BaseStep
	Err      error
	Fn       operations.StepFunc
	Recorder *Recorder
	Calls    int
}

// NewMockStep creates a step that succeeds and records itself in rec
func NewMockStep(rec *Recorder, id string, deps ...string) *MockStep {
	return &MockStep{
		BaseStep: operations.NewBaseStep(id, "Step "+id, deps...),
		Recorder: rec,
	}
}

// Failing makes the step return err
func (s *MockStep) Failing(err error) *MockStep {
	s.Err = err
	return s
}

// Execute records the call, runs Fn and returns Err
func (s *MockStep) Execute(ctx context.Context, state *operations.RunState) error {
	s.Calls++
	if s.Recorder != nil {
		s.Recorder.Record(s.ID())
	}
	if s.Fn != nil {
		if err := s.Fn(ctx, state); err != nil {
			return err
		}
	}
	return s.Err
}
