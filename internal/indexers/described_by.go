package indexers

import "context"

// DescribedByField records where the resource's description lives.
// Non-RDF sources carry a separate description URL; RDF sources are
// self-describing, so the resource URI is used.
func DescribedByField(_ context.Context, ic *Context) (Doc, error) {
	uri := ic.Resource.DescriptionURL
	if uri == "" {
		uri = ic.Resource.URI
	}
	return Doc{"described_by__uri": uri}, nil
}
