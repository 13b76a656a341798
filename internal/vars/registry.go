// Package vars implements the value store for plugin variables. Values are
// keyed by (module file, instance name, variable label) and stored untyped;
// callers re-type them through their variable's cast table on read.
package vars

import "sync"

// Registry stores per-instance plugin variable values.
//
// The registry is owned by whoever manages the profile lifecycle. Loading a
// profile clears it and repopulates it from the document's persisted
// instance values; a UI mutates it as controls change. It is never shared
// across profiles: stale values under a matching (module, instance, label)
// triple would otherwise leak into the next profile.
type Registry struct {
	mu     sync.RWMutex
	values map[string]map[string]map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]map[string]map[string]any)}
}

// Set stores a value under (module, instance, label), creating the
// intermediate levels as needed.
func (r *Registry) Set(module, instance, label string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	instances, ok := r.values[module]
	if !ok {
		instances = make(map[string]map[string]any)
		r.values[module] = instances
	}
	labels, ok := instances[instance]
	if !ok {
		labels = make(map[string]any)
		instances[instance] = labels
	}
	labels[label] = value
}

// Get returns the value stored under (module, instance, label), or nil if
// no value is present. Reads never create intermediate levels.
func (r *Registry) Get(module, instance, label string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instances, ok := r.values[module]
	if !ok {
		return nil
	}
	labels, ok := instances[instance]
	if !ok {
		return nil
	}
	return labels[label]
}

// Clear empties the registry. Called at profile switch boundaries before
// any module of the next profile is hydrated.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string]map[string]map[string]any)
}
