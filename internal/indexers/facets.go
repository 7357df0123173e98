package indexers

import (
	"context"
)

// Faceter computes the values of one facet for the resource being
// indexed. A nil value slice suppresses the facet field entirely.
type Faceter interface {
	// Name is the facet name; the field is named {Name}__facet.
	Name() string
	Values(ctx context.Context, ic *Context) ([]string, error)
}

// NewFacetsIndexer builds the facets indexer from a set of faceters.
// Each faceter that yields values contributes a {name}__facet field.
// A faceter error skips that facet but does not fail the indexer.
func NewFacetsIndexer(faceters []Faceter) Indexer {
	return func(ctx context.Context, ic *Context) (Doc, error) {
		fields := make(Doc)
		for _, faceter := range faceters {
			values, err := faceter.Values(ctx, ic)
			if err != nil {
				ic.Logger().Warn("faceter failed",
					"facet", faceter.Name(), "uri", ic.Resource.URI, "error", err)
				continue
			}
			if len(values) == 0 {
				continue
			}
			anyValues := make([]any, len(values))
			for i, v := range values {
				anyValues[i] = v
			}
			fields[faceter.Name()+"__facet"] = anyValues
		}
		return fields, nil
	}
}
