package native

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultBackend names the backend used when the configuration leaves it empty.
const DefaultBackend = "simulator"

// Builder creates an API for a registered backend.
type Builder func() (API, error)

// Registry maintains a mapping of backend names to their builders.
// Backends register themselves from an init function.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// DefaultRegistry is the global backend registry.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(DefaultBackend, func() (API, error) {
		return NewSimulator(), nil
	})
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a backend builder to the registry, replacing any builder
// previously registered under the same name.
func (r *Registry) Register(name string, builder Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = builder
}

// Build creates the API for the named backend. An empty name selects
// DefaultBackend.
func (r *Registry) Build(name string) (API, error) {
	if name == "" {
		name = DefaultBackend
	}

	r.mu.RLock()
	builder, ok := r.builders[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown native backend: %q (registered: %v)", name, r.Names())
	}

	api, err := builder()
	if err != nil {
		return nil, fmt.Errorf("build native backend %q: %w", name, err)
	}
	return api, nil
}

// Names returns the sorted list of registered backend names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has returns true if a backend is registered with the given name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[name]
	return ok
}

// Register adds a backend builder to the default registry.
func Register(name string, builder Builder) {
	DefaultRegistry.Register(name, builder)
}

// Build creates an API using the default registry.
func Build(name string) (API, error) {
	return DefaultRegistry.Build(name)
}
