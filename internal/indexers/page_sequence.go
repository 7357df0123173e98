package indexers

import (
	"context"
	"fmt"
)

// PageSequence is the ordered list of a resource's member pages,
// reconstructed from the nested documents the content_model indexer
// produced. Ordering follows the {model}__first proxy and each
// proxy__next link. Pages are looked up by the proxy__proxy_for__uri
// target.
type PageSequence struct {
	membersByURI map[string]Doc
	uris         []string
}

// NewPageSequence builds the sequence from the accumulated document.
// A resource with no first proxy yields an empty sequence.
func NewPageSequence(ic *Context) *PageSequence {
	seq := &PageSequence{membersByURI: make(map[string]Doc)}

	for _, member := range ic.DocChildren(ic.Prefix() + "__has_member") {
		if id, ok := member["id"].(string); ok {
			seq.membersByURI[id] = member
		}
	}

	proxies := ic.DocChildren(ic.Prefix() + "__first")
	if len(proxies) == 0 {
		return seq
	}
	proxy := proxies[0]
	for proxy != nil {
		target, ok := proxy["proxy__proxy_for__uri"].(string)
		if !ok {
			break
		}
		seq.uris = append(seq.uris, target)
		next := childDocs(proxy["proxy__next"])
		if len(next) == 0 {
			break
		}
		proxy = next[0]
	}
	return seq
}

// Len returns the number of pages in the sequence.
func (s *PageSequence) Len() int {
	return len(s.uris)
}

// URIs returns the ordered page URIs.
func (s *PageSequence) URIs() []string {
	return s.uris
}

// Pages returns the ordered page documents. URIs with no matching
// member document are skipped.
func (s *PageSequence) Pages() []Doc {
	var pages []Doc
	for _, uri := range s.uris {
		if page, ok := s.membersByURI[uri]; ok {
			pages = append(pages, page)
		}
	}
	return pages
}

// Labels returns the ordered page labels from each page's
// page__title__txt field, falling back to "[Page N]" for untitled
// pages.
func (s *PageSequence) Labels() []string {
	pages := s.Pages()
	labels := make([]string, len(pages))
	for i, page := range pages {
		if title, ok := page["page__title__txt"].(string); ok {
			labels[i] = title
		} else {
			labels[i] = fmt.Sprintf("[Page %d]", i+1)
		}
	}
	return labels
}

func childDocs(v any) []Doc {
	var out []Doc
	for _, item := range ValueList(v) {
		switch d := item.(type) {
		case Doc:
			out = append(out, d)
		case map[string]any:
			out = append(out, Doc(d))
		}
	}
	return out
}

// PageSequenceFields generates the ordered page label and URI fields
// for paged resources. Resources without a first proxy produce no
// fields.
func PageSequenceFields(_ context.Context, ic *Context) (Doc, error) {
	if _, ok := ic.Doc[ic.Prefix()+"__first"]; !ok {
		return Doc{}, nil
	}

	seq := NewPageSequence(ic)
	labels := make([]any, 0, seq.Len())
	for _, l := range seq.Labels() {
		labels = append(labels, l)
	}
	uris := make([]any, 0, seq.Len())
	for _, u := range seq.URIs() {
		uris = append(uris, u)
	}
	return Doc{
		"page_label_sequence__txts": labels,
		"page_uri_sequence__uris":   uris,
	}, nil
}
