package indexers

import (
	"context"
	"fmt"
	"sort"

	"solrizer/internal/errors"
)

// Failure records one indexer that did not complete. The pipeline
// continues past failed indexers so one bad indexer cannot block the
// rest of the document.
type Failure struct {
	Indexer string
	Err     error
}

// Collision records a scalar field that a later indexer tried to
// overwrite. The earlier value is kept.
type Collision struct {
	Indexer string
	Field   string
}

// Result is the outcome of one pipeline run.
type Result struct {
	Doc        Doc
	Failures   []Failure
	Collisions []Collision
}

// Pipeline runs a configured list of indexers over a resource and
// merges their output into one document.
type Pipeline struct {
	Registry *Registry
	// Settings holds the per-indexer settings, keyed by indexer name.
	Settings map[string]map[string]any
}

// Run executes the named indexers in order. An empty list is a
// configuration error. Unknown names fail before any indexer runs.
// Individual indexer errors and panics are recorded as failures and do
// not stop the run.
func (p *Pipeline) Run(ctx context.Context, ic *Context, names []string) (*Result, error) {
	if len(names) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoIndexersConfigured,
			"no indexers configured for resource %s", ic.Resource.URI)
	}
	resolved, err := p.Registry.Resolve(names)
	if err != nil {
		return nil, err
	}

	if ic.Doc == nil {
		ic.Doc = make(Doc)
	}
	result := &Result{Doc: ic.Doc}

	for _, indexer := range resolved {
		ic.Settings = p.Settings[indexer.Name]
		fields, err := p.runOne(ctx, ic, indexer)
		if err != nil {
			ic.Logger().Warn("indexer failed",
				"indexer", indexer.Name, "uri", ic.Resource.URI, "error", err)
			result.Failures = append(result.Failures, Failure{Indexer: indexer.Name, Err: err})
			continue
		}
		result.Collisions = append(result.Collisions, merge(ic.Doc, fields, indexer.Name)...)
	}

	for _, c := range result.Collisions {
		ic.Logger().Warn("field collision, keeping earlier value",
			"indexer", c.Indexer, "field", c.Field, "uri", ic.Resource.URI)
	}

	return result, nil
}

// runOne isolates a single indexer, turning a panic into an error.
func (p *Pipeline) runOne(ctx context.Context, ic *Context, indexer Named) (fields Doc, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrCodeIndexerFailed, "indexer %q panicked: %v", indexer.Name, r)
		}
	}()
	fields, err = indexer.Fn(ctx, ic)
	if err != nil && errors.GetCode(err) == "" {
		err = errors.New(errors.ErrCodeIndexerFailed,
			fmt.Sprintf("indexer %q failed", indexer.Name), err)
	}
	return fields, err
}

// merge folds src into dst. Multivalued fields accumulate values in
// order. A scalar field keeps its first value; later writes are
// reported as collisions.
func merge(dst, src Doc, indexer string) []Collision {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var collisions []Collision
	for _, k := range keys {
		v := src[k]
		old, exists := dst[k]
		if !exists {
			dst[k] = v
			continue
		}
		if Multivalued(k) {
			dst[k] = append(ValueList(old), ValueList(v)...)
			continue
		}
		collisions = append(collisions, Collision{Indexer: indexer, Field: k})
	}
	return collisions
}
