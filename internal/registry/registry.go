package registry

import (
	"fmt"
	"io"
	"sync"
)

// Constructor builds a component, resolving its dependencies from the
// registry it receives.
type Constructor func(*Registry) (any, error)

// Registry is a name-keyed dependency container with lazy singleton
// construction and cycle detection. Components that implement io.Closer are
// closed in reverse construction order by Close.
type Registry struct {
	mu       sync.Mutex
	ctors    map[string]Constructor
	values   map[string]any
	building map[string]bool
	order    []string
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		ctors:    make(map[string]Constructor),
		values:   make(map[string]any),
		building: make(map[string]bool),
	}
}

// Provide registers a constructor under name. Registering the same name twice
// is an error; use Set to replace a built value (tests do this).
func (r *Registry) Provide(name string, ctor Constructor) error {
	if name == "" {
		return fmt.Errorf("registry: empty component name")
	}
	if ctor == nil {
		return fmt.Errorf("registry: nil constructor for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[name]; exists {
		return fmt.Errorf("registry: %q already provided", name)
	}
	if _, exists := r.values[name]; exists {
		return fmt.Errorf("registry: %q already set", name)
	}
	r.ctors[name] = ctor
	return nil
}

// Set stores a ready-made value under name, replacing any previous value or
// constructor.
func (r *Registry) Set(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ctors, name)
	if _, existed := r.values[name]; !existed {
		r.order = append(r.order, name)
	}
	r.values[name] = value
}

// Get returns the component registered under name, constructing it on first
// use. Construction cycles are detected and reported.
func (r *Registry) Get(name string) (any, error) {
	r.mu.Lock()
	if value, ok := r.values[name]; ok {
		r.mu.Unlock()
		return value, nil
	}
	ctor, ok := r.ctors[name]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("registry: unknown component %q", name)
	}
	if r.building[name] {
		r.mu.Unlock()
		return nil, fmt.Errorf("registry: dependency cycle through %q", name)
	}
	r.building[name] = true
	r.mu.Unlock()

	value, err := ctor(r)

	r.mu.Lock()
	delete(r.building, name)
	if err != nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("registry: build %q: %w", name, err)
	}
	r.values[name] = value
	r.order = append(r.order, name)
	delete(r.ctors, name)
	r.mu.Unlock()

	return value, nil
}

// Close closes every constructed component implementing io.Closer, newest
// first. The first close error is returned after all closers run.
func (r *Registry) Close() error {
	r.mu.Lock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	values := make(map[string]any, len(r.values))
	for k, v := range r.values {
		values[k] = v
	}
	r.mu.Unlock()

	var firstErr error
	for i := len(names) - 1; i >= 0; i-- {
		closer, ok := values[names[i]].(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("registry: close %q: %w", names[i], err)
		}
	}
	return firstErr
}

// Resolve fetches a component and asserts its type.
func Resolve[T any](r *Registry, name string) (T, error) {
	var zero T
	value, err := r.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("registry: component %q has type %T, not %T", name, value, zero)
	}
	return typed, nil
}
