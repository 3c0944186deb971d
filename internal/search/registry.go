package search

import (
	"sort"

	"leadfinder-engine/internal/source"
)

// Registry is the explicit set of sources one aggregator dispatches to.
// It is built once at startup and passed by reference; tests substitute
// their own registries with fake sources.
type Registry struct {
	order  []string
	byName map[string]source.Source
}

func NewRegistry(sources ...source.Source) *Registry {
	r := &Registry{byName: make(map[string]source.Source)}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a source under its own name.
func (r *Registry) Register(s source.Source) {
	name := s.Name()
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = s
}

func (r *Registry) Lookup(name string) (source.Source, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Names returns the registered platform identifiers in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SortedNames is Names in lexical order, for stable display surfaces.
func (r *Registry) SortedNames() []string {
	out := r.Names()
	sort.Strings(out)
	return out
}
