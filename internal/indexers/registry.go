package indexers

import (
	"sort"

	"solrizer/internal/errors"
)

// Registry maps indexer names to their implementations. Lookup by name
// mirrors how indexer lists appear in configuration.
type Registry struct {
	indexers map[string]Indexer
}

// Named pairs an indexer with its registered name.
type Named struct {
	Name string
	Fn   Indexer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{indexers: make(map[string]Indexer)}
}

// Register adds an indexer under the given name, replacing any previous
// registration.
func (r *Registry) Register(name string, fn Indexer) {
	r.indexers[name] = fn
}

// Names returns the sorted registered indexer names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.indexers))
	for name := range r.indexers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the indexer registered under the name.
func (r *Registry) Lookup(name string) (Indexer, bool) {
	fn, ok := r.indexers[name]
	return fn, ok
}

// Resolve maps each name to its registered indexer, failing on the
// first unknown name so a bad configuration is caught before any
// indexer runs.
func (r *Registry) Resolve(names []string) ([]Named, error) {
	resolved := make([]Named, 0, len(names))
	for _, name := range names {
		fn, ok := r.indexers[name]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeUnknownIndexer, "no indexer named %q is registered", name)
		}
		resolved = append(resolved, Named{Name: name, Fn: fn})
	}
	return resolved, nil
}
