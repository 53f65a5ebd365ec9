// Package hooks implements named, ordered lists of text transforms.
//
// A stage is a name mapped to a sequence of Hook functions. Running a stage
// folds its hooks over the input in registration order, so the hook added
// last wraps outermost. Unknown stages are legal and behave as identity.
package hooks

import (
	"sort"
	"sync"
)

// Hook transforms a text value. Hooks are expected to be pure.
type Hook func(string) string

// Registry holds the hook sequences of every stage.
// It is safe for concurrent use; hooks themselves run outside the lock.
type Registry struct {
	mu     sync.RWMutex
	stages map[string][]Hook
}

// NewRegistry creates a Registry with the given stage names pre-created empty.
func NewRegistry(stages ...string) *Registry {
	r := &Registry{stages: make(map[string][]Hook, len(stages))}
	for _, name := range stages {
		r.stages[name] = []Hook{}
	}
	return r
}

// Add appends fn to the stage, creating the stage if needed.
// The same function may be added more than once. A nil fn is ignored.
func (r *Registry) Add(stage string, fn Hook) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stages == nil {
		r.stages = make(map[string][]Hook)
	}
	r.stages[stage] = append(r.stages[stage], fn)
}

// Clear empties the stage. The stage stays registered.
func (r *Registry) Clear(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stages == nil {
		r.stages = make(map[string][]Hook)
	}
	r.stages[stage] = []Hook{}
}

// Run applies the stage's hooks to input, each consuming the previous output.
func (r *Registry) Run(stage string, input string) string {
	for _, fn := range r.snapshot(stage) {
		input = fn(input)
	}
	return input
}

// Len returns the number of hooks registered for the stage.
func (r *Registry) Len(stage string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stages[stage])
}

// Has reports whether the stage exists, empty or not.
func (r *Registry) Has(stage string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.stages[stage]
	return ok
}

// Stages returns the names of all known stages, sorted.
func (r *Registry) Stages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.stages))
	for name := range r.stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// snapshot copies the stage's hooks so Run does not hold the lock while
// calling user code, which may itself register hooks.
func (r *Registry) snapshot(stage string) []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fns := r.stages[stage]
	if len(fns) == 0 {
		return nil
	}
	out := make([]Hook, len(fns))
	copy(out, fns)
	return out
}
