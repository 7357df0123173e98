// Package faceters implements the facet value extractors behind the
// facets indexer. Each faceter reads the resource graph or the
// accumulated document and yields the values for one facet field.
// Which property backs a facet depends on the content model.
package faceters

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"solrizer/internal/indexers"
	"solrizer/internal/rdf"
)

// Default returns every built-in faceter in the order they run.
func Default() []indexers.Faceter {
	return []indexers.Faceter{
		AdminSet{},
		ArchivalCollection{},
		Contributor{},
		Creator{},
		Language{},
		Location{},
		OCR{},
		PresentationSet{},
		PublicationStatus{},
		Publisher{},
		RDFType{},
		ResourceType{},
		Rights{},
		Subject{},
		Visibility{},
	}
}

// propertyTerms returns the values of the named model property from
// the resource graph. Models without the property yield nil.
func propertyTerms(ic *indexers.Context, attr string) []rdf.Term {
	prop, ok := ic.Model.Property(attr)
	if !ok {
		return nil
	}
	return ic.Resource.Graph.Objects(ic.Resource.URI, prop.Predicate)
}

// objectLabels returns, for each object of the property, its sorted
// rdfs:label values joined with " / ". Objects without labels are
// skipped.
func objectLabels(ic *indexers.Context, attr string) []string {
	var out []string
	for _, term := range propertyTerms(ic, attr) {
		labels := ic.Resource.Graph.Objects(term.Value, rdf.RDFSLabel)
		if len(labels) == 0 {
			continue
		}
		values := make([]string, len(labels))
		for i, l := range labels {
			values[i] = l.Value
		}
		sort.Strings(values)
		out = append(out, strings.Join(values, " / "))
	}
	return out
}

// dataValues returns the property's literal values passed through the
// converter.
func dataValues(ic *indexers.Context, attr string, convert func(string) string) []string {
	var out []string
	for _, term := range propertyTerms(ic, attr) {
		if convert != nil {
			out = append(out, convert(term.Value))
		} else {
			out = append(out, term.Value)
		}
	}
	return out
}

// concatValues joins the property's sorted literal values with " / ".
func concatValues(ic *indexers.Context, attr string) string {
	values := dataValues(ic, attr, nil)
	sort.Strings(values)
	return strings.Join(values, " / ")
}

// languageName translates an ISO 639 language code into the English
// name of the language, falling back to the code itself.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		slog.Warn("cannot match value to an ISO 639 language code", "code", code)
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}

// AdminSet facets on the title of the pcdm:Collection the resource is
// a member of.
type AdminSet struct{}

func (AdminSet) Name() string { return "admin_set" }

func (AdminSet) Values(ctx context.Context, ic *indexers.Context) ([]string, error) {
	terms := propertyTerms(ic, "member_of")
	if len(terms) == 0 {
		return nil, nil
	}
	collection, err := ic.Repo.Get(ctx, terms[0].Value)
	if err != nil {
		return nil, err
	}
	title, ok := collection.Graph.Object(collection.URI, rdf.NSDcterms+"title")
	if !ok {
		return nil, nil
	}
	return []string{title.Value}, nil
}

// ArchivalCollection facets on the collection the resource belongs to.
// Items use archival_collection labels, Letters use part_of labels,
// and Posters carry the collection name directly in part_of.
type ArchivalCollection struct{}

func (ArchivalCollection) Name() string { return "archival_collection" }

func (ArchivalCollection) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	switch ic.Model.Name {
	case "Item":
		return objectLabels(ic, "archival_collection"), nil
	case "Letter":
		return objectLabels(ic, "part_of"), nil
	case "Poster":
		if terms := propertyTerms(ic, "part_of"); len(terms) > 0 {
			return []string{terms[0].Value}, nil
		}
	}
	return nil, nil
}

// Contributor facets on the contributor labels of Items.
type Contributor struct{}

func (Contributor) Name() string { return "contributor" }

func (Contributor) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	if ic.Model.Name != "Item" {
		return nil, nil
	}
	return objectLabels(ic, "contributor"), nil
}

// Creator facets on Item creator labels and Letter author labels.
type Creator struct{}

func (Creator) Name() string { return "creator" }

func (Creator) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	switch ic.Model.Name {
	case "Item":
		return objectLabels(ic, "creator"), nil
	case "Letter":
		return objectLabels(ic, "author"), nil
	}
	return nil, nil
}

// Language facets on the resource language. Item and Letter store ISO
// 639 codes, which are translated to full language names; Poster
// stores the full name directly.
type Language struct{}

func (Language) Name() string { return "language" }

func (Language) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	switch ic.Model.Name {
	case "Item", "Letter":
		return dataValues(ic, "language", languageName), nil
	case "Poster":
		return dataValues(ic, "language", nil), nil
	}
	return nil, nil
}

// Location facets on Item location labels, Letter place labels, or the
// concatenated Poster location values.
type Location struct{}

func (Location) Name() string { return "location" }

func (Location) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	switch ic.Model.Name {
	case "Item":
		return objectLabels(ic, "location"), nil
	case "Letter":
		return objectLabels(ic, "place"), nil
	case "Poster":
		if v := concatValues(ic, "location"); v != "" {
			return []string{v}, nil
		}
	}
	return nil, nil
}

// OCR facets on the presence of extracted text. The value "Has OCR"
// appears when the resource or any of its members has a file with the
// pcdmuse:ExtractedText type; otherwise the facet is omitted.
type OCR struct{}

func (OCR) Name() string { return "has_ocr" }

func (OCR) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	if hasExtractedText(ic.DocChildren(ic.Prefix() + "__has_file")) {
		return []string{"Has OCR"}, nil
	}
	for _, member := range ic.DocChildren(ic.Prefix() + "__has_member") {
		files := member["page__has_file"]
		var fileDocs []indexers.Doc
		for _, v := range indexers.ValueList(files) {
			if d, ok := v.(indexers.Doc); ok {
				fileDocs = append(fileDocs, d)
			}
		}
		if hasExtractedText(fileDocs) {
			return []string{"Has OCR"}, nil
		}
	}
	return nil, nil
}

func hasExtractedText(files []indexers.Doc) bool {
	for _, file := range files {
		for _, t := range indexers.ValueList(file["file__rdf_type__uris"]) {
			if s, ok := t.(string); ok && s == rdf.TypeExtractedText {
				return true
			}
		}
	}
	return false
}

// PresentationSet facets on the labels of the sets the resource is
// aggregated by.
type PresentationSet struct{}

func (PresentationSet) Name() string { return "presentation_set" }

func (PresentationSet) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	return objectLabels(ic, "presentation_set"), nil
}

// PublicationStatus facets on the umdaccess:Published type.
type PublicationStatus struct{}

func (PublicationStatus) Name() string { return "publication_status" }

func (PublicationStatus) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	for _, t := range ic.Resource.Types() {
		if t == rdf.TypePublished {
			return []string{"Published"}, nil
		}
	}
	return []string{"Unpublished"}, nil
}

// Publisher facets on Item publisher labels or the concatenated Poster
// publisher values.
type Publisher struct{}

func (Publisher) Name() string { return "publisher" }

func (Publisher) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	switch ic.Model.Name {
	case "Item":
		return objectLabels(ic, "publisher"), nil
	case "Poster":
		if v := concatValues(ic, "publisher"); v != "" {
			return []string{v}, nil
		}
	}
	return nil, nil
}

// RDFType facets on the CURIEs the content_model indexer recorded for
// the resource's rdf:type statements.
type RDFType struct{}

func (RDFType) Name() string { return "rdf_type" }

func (RDFType) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	return ic.DocStrings(ic.Prefix() + "__rdf_type__curies"), nil
}

// ResourceType facets on the genre or format of the resource. Items
// use format labels, Letters use the type values, and Posters use the
// format value up to the first comma, since Poster formats append
// extent information after the genre term.
type ResourceType struct{}

func (ResourceType) Name() string { return "resource_type" }

func (ResourceType) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	switch ic.Model.Name {
	case "Item":
		return objectLabels(ic, "format"), nil
	case "Letter":
		return dataValues(ic, "type", nil), nil
	case "Poster":
		return dataValues(ic, "format", func(v string) string {
			return strings.TrimSpace(strings.SplitN(v, ",", 2)[0])
		}), nil
	}
	return nil, nil
}

// Rights facets on the rights statement. Items use the labels of the
// rights vocabulary terms. Letters and Posters hold rightsstatements.org
// URLs, which are correlated back to the local rights vocabulary
// through owl:sameAs.
type Rights struct{}

func (Rights) Name() string { return "rights" }

func (Rights) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	switch ic.Model.Name {
	case "Item":
		return objectLabels(ic, "rights"), nil
	case "Letter", "Poster":
		return dataValues(ic, "rights", func(v string) string {
			return rightsStatementLabel(ic.Resource.Graph, v)
		}), nil
	}
	return nil, nil
}

// rightsStatementLabel finds the local rights vocabulary term declared
// owl:sameAs the given URI and returns its label. Unmatched URIs pass
// through unchanged.
func rightsStatementLabel(g *rdf.Graph, uri string) string {
	for _, subject := range g.FindSubjects(rdf.OwlSameAs, uri) {
		if !strings.HasPrefix(subject, rdf.NSUmdRights) {
			continue
		}
		if label, ok := g.Object(subject, rdf.RDFSLabel); ok {
			return label.Value
		}
	}
	slog.Warn("cannot find rights vocabulary term", "uri", uri)
	return uri
}

// Subject facets on Item and Letter subject labels or the direct
// Poster subject values.
type Subject struct{}

func (Subject) Name() string { return "subject" }

func (Subject) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	switch ic.Model.Name {
	case "Item", "Letter":
		return objectLabels(ic, "subject"), nil
	case "Poster":
		return dataValues(ic, "subject", nil), nil
	}
	return nil, nil
}

// Visibility facets on the umdaccess:Hidden type.
type Visibility struct{}

func (Visibility) Name() string { return "visibility" }

func (Visibility) Values(_ context.Context, ic *indexers.Context) ([]string, error) {
	for _, t := range ic.Resource.Types() {
		if t == rdf.TypeHidden {
			return []string{"Hidden"}, nil
		}
	}
	return []string{"Visible"}, nil
}
