// Package action defines the open registry of action bindings: the tagged,
// serializable records attached to a profile's input items. The core never
// executes actions; it only round-trips their payloads through the profile
// document. New action types register a constructor under their XML tag.
package action

import (
	"sort"

	"github.com/beevik/etree"
)

// Binding is one action attached to an input item. Implementations own
// their payload and its XML representation.
type Binding interface {
	// Tag is the XML element tag identifying the action type.
	Tag() string

	// FromXML populates the payload from an element carrying this tag.
	FromXML(e *etree.Element) error

	// ToXML renders the payload as a fresh element.
	ToXML() *etree.Element
}

// Constructor creates an empty Binding ready for FromXML.
type Constructor func() Binding

// Registry maps action tags to their constructors. It is consulted during
// both directions of profile (de)serialization.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a constructor under the given tag, replacing any previous
// registration for that tag.
func (r *Registry) Register(tag string, ctor Constructor) {
	r.ctors[tag] = ctor
}

// RegisterBinding adds a constructor under the tag its bindings report.
func (r *Registry) RegisterBinding(ctor Constructor) {
	r.Register(ctor().Tag(), ctor)
}

// Resolve returns the constructor registered for a tag.
func (r *Registry) Resolve(tag string) (Constructor, bool) {
	ctor, ok := r.ctors[tag]
	return ctor, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.ctors))
	for tag := range r.ctors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DefaultRegistry returns a registry with all builtin action types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterBinding(func() Binding { return &Macro{} })
	r.RegisterBinding(func() Binding { return &Remap{} })
	r.RegisterBinding(func() Binding { return &ResponseCurve{} })
	r.RegisterBinding(func() Binding { return &CycleModes{} })
	r.RegisterBinding(func() Binding { return &PauseAction{} })
	r.RegisterBinding(func() Binding { return &ResumeAction{} })
	r.RegisterBinding(func() Binding { return &SwitchMode{} })
	r.RegisterBinding(func() Binding { return &SwitchPreviousMode{} })
	return r
}
