package render

import (
	"errors"
	"fmt"
	"sync"
)

// Registry maps renderer names to renderers. The first renderer registered
// is the fallback when a caller names none and no default is set.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	first     string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.first == "" {
		r.first = name
	}
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Fallback returns the first registered renderer.
func (r *Registry) Fallback() (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.first == "" {
		return nil, errors.New("render: no renderers registered")
	}
	return r.renderers[r.first], nil
}
