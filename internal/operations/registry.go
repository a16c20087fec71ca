package operations

import (
	"fmt"
	"sync"
)

// Registry manages registered pipeline steps
type Registry struct {
	mu    sync.RWMutex
	steps map[string]Step
	order []string // Maintains registration order
}

// NewRegistry creates a new Step registry
func NewRegistry() *Registry {
	return &Registry{
		steps: make(map[string]Step),
		order: make([]string, 0),
	}
}

// Register adds a Step to the registry
func (r *Registry) Register(step Step) error {
	if step == nil {
		return NewValidationError("", "cannot register nil step")
	}

	id := step.ID()
	if id == "" {
		return NewValidationError("", "step ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.steps[id]; exists {
		return NewValidationError(id, "step already registered")
	}

	r.steps[id] = step
	r.order = append(r.order, id)
	return nil
}

// MustRegister registers every step and panics on the first error
func (r *Registry) MustRegister(steps ...Step) *Registry {
	for _, s := range steps {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Has checks if a Step is registered
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.steps[id]
	return exists
}

// Count returns the number of registered steps
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.steps)
}

// DependencyOrder returns steps ordered so every step follows its
// dependencies. Steps that become ready together keep registration order.
func (r *Registry) DependencyOrder() ([]Step, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	graph := make(map[string][]string, len(r.steps))
	inDegree := make(map[string]int, len(r.steps))
	position := make(map[string]int, len(r.order))
	for i, id := range r.order {
		position[id] = i
		inDegree[id] = 0
	}

	for _, id := range r.order {
		for _, dep := range r.steps[id].Dependencies() {
			if _, exists := r.steps[dep]; !exists {
				return nil, NewDependencyError(id, dep, fmt.Sprintf("depends on unknown step %s", dep))
			}
			graph[dep] = append(graph[dep], id)
			inDegree[id]++
		}
	}

	// Kahn's algorithm; the ready set is kept sorted by registration order
	var ready []string
	for _, id := range r.order {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	ordered := make([]Step, 0, len(r.steps))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		ordered = append(ordered, r.steps[current])

		for _, dependent := range graph[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = insertByPosition(ready, dependent, position)
			}
		}
	}

	if len(ordered) != len(r.steps) {
		var stuck []string
		for _, id := range r.order {
			if inDegree[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		return nil, &OperationError{
			Type:    ErrorTypeDependency,
			Message: "dependency cycle detected",
			Context: map[string]any{"steps": stuck},
		}
	}

	return ordered, nil
}

func insertByPosition(ready []string, id string, position map[string]int) []string {
	i := len(ready)
	for j, other := range ready {
		if position[other] > position[id] {
			i = j
			break
		}
	}
	ready = append(ready, "")
	copy(ready[i+1:], ready[i:])
	ready[i] = id
	return ready
}
