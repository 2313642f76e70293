package strategy

import (
	"slices"
)

// Registry maps leaf type identities to their generators.
//
// It is not safe for concurrent mutation. Callers that register strategies
// while other goroutines synthesize values must serialize those calls.
type Registry struct {
	items map[string]Generator
}

// NewRegistry returns a registry seeded with the built-in strategies.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for id, g := range Builtins() {
		r.Register(id, g)
	}

	return r
}

// NewEmptyRegistry returns a registry without any strategy.
func NewEmptyRegistry() *Registry {
	return &Registry{items: map[string]Generator{}}
}

// Register stores g under id, replacing any previous generator.
func (r *Registry) Register(id string, g Generator) {
	if r.items == nil {
		r.items = map[string]Generator{}
	}

	r.items[id] = g
}

// Lookup returns the generator registered for id.
func (r *Registry) Lookup(id string) (Generator, bool) {
	g, ok := r.items[id]
	return g, ok
}

// Has reports whether a generator is registered for id.
func (r *Registry) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

// IDs returns the registered identities in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}
