package indexers

// DefaultRegistry returns a registry with every built-in indexer
// registered under its configuration name. The faceters back the
// facets indexer; they are passed in so facet implementations can live
// in their own package.
func DefaultRegistry(faceters []Faceter) *Registry {
	r := NewRegistry()
	r.Register("content_model", ContentModelFields)
	r.Register("discoverability", DiscoverabilityFields)
	r.Register("page_sequence", PageSequenceFields)
	r.Register("iiif_links", IIIFLinksFields)
	r.Register("dates", DateFields)
	r.Register("facets", NewFacetsIndexer(faceters))
	r.Register("extracted_text", ExtractedTextFields)
	r.Register("root", RootField)
	r.Register("handles", HandleFields)
	r.Register("described_by", DescribedByField)
	r.Register("aggregate_fields", AggregateFields)
	return r
}
