package plugin

import (
	"fmt"
	"sync"
)

// Registry maps plugin names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]func() Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() Plugin)}
}

// Register adds a plugin factory under its name. Registering a duplicate
// name is an error.
func (r *Registry) Register(name string, factory func() Plugin) error {
	if name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for plugin %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("plugin %s already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Resolve instantiates the named plugins, preserving order. Unknown names
// fail before the build starts.
func (r *Registry) Resolve(names []string) ([]Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugins := make([]Plugin, 0, len(names))
	for _, name := range names {
		factory, ok := r.factories[name]
		if !ok {
			return nil, fmt.Errorf("plugin %s not found", name)
		}
		plugins = append(plugins, factory())
	}
	return plugins, nil
}

// Has checks if a plugin with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// globalRegistry is the default registry builtins register into.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a plugin factory to the global registry.
func Register(name string, factory func() Plugin) error {
	return globalRegistry.Register(name, factory)
}

// Resolve instantiates plugins from the global registry.
func Resolve(names []string) ([]Plugin, error) {
	return globalRegistry.Resolve(names)
}
