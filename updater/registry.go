package updater

import (
	"sort"
	"sync"
)

// Registry maps configuration type discriminators (the "type" key of a
// section) to updater factories. It is populated once at process startup and
// only read during decoration passes.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory for typeName. Registering the same type twice
// silently overwrites: registration happens once at startup under a single
// authority, so last-wins is acceptable. Nil factories and empty names are
// ignored.
func (r *Registry) Register(typeName string, factory Factory) {
	if typeName == "" || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeName] = factory
}

// Resolve returns the factory for typeName. Absence is not an error: it
// signals an unknown type, which a decoration pass skips without failing.
func (r *Registry) Resolve(typeName string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[typeName]
	return factory, ok
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
