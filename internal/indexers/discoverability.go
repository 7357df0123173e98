package indexers

import (
	"context"
	"strings"

	"solrizer/internal/rdf"
)

// DiscoverabilityFields derives the publication flags from the
// resource's rdf:type statements. A resource is discoverable when it
// is a published, non-hidden, top-level object.
func DiscoverabilityFields(_ context.Context, ic *Context) (Doc, error) {
	types := ic.Resource.Types()

	published := false
	hidden := false
	topLevel := false
	for _, t := range types {
		switch t {
		case rdf.TypePublished:
			published = true
		case rdf.TypeHidden:
			hidden = true
		}
		if strings.HasPrefix(t, rdf.NSUmdModel) {
			topLevel = true
		}
	}

	return Doc{
		"is_published":    published,
		"is_hidden":       hidden,
		"is_top_level":    topLevel,
		"is_discoverable": topLevel && published && !hidden,
	}, nil
}
