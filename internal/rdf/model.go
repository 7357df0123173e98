package rdf

import (
	"strings"

	"solrizer/internal/errors"
)

// Kind distinguishes data properties (literal values) from object
// properties (IRI values).
type Kind int

const (
	// DataProperty values are literals.
	DataProperty Kind = iota
	// ObjectProperty values are IRIs.
	ObjectProperty
)

// Property describes one attribute of a content model: the attribute
// name used in field names, the predicate it is read from, and how its
// object values are treated.
type Property struct {
	// Attr is the attribute name used to build field names.
	Attr string
	// Predicate is the IRI the values are read from.
	Predicate string
	// Kind selects literal vs IRI handling.
	Kind Kind
	// Repeatable marks multivalued properties; their field names take
	// a plural suffix.
	Repeatable bool
	// ObjectClass names the content model of linked or embedded
	// objects. Empty for plain object references.
	ObjectClass string
	// Embedded object values are described within the resource's own
	// graph (hash URIs, proxies) rather than fetched separately.
	Embedded bool
	// Vocabulary object values are controlled-vocabulary terms whose
	// labels are folded into sibling fields.
	Vocabulary bool
}

// Model is a content model: a name, the rdf:type that identifies it,
// and the properties the content_model indexer generates fields from.
type Model struct {
	Name       string
	TypeURI    string
	IsTopLevel bool
	Properties []Property
}

// Prefix returns the lowercase model name used to prefix field names.
func (m *Model) Prefix() string {
	return strings.ToLower(m.Name)
}

// Property returns the named property of the model.
func (m *Model) Property(attr string) (Property, bool) {
	for _, p := range m.Properties {
		if p.Attr == attr {
			return p, true
		}
	}
	return Property{}, false
}

// auditProperties are the repository-managed properties shared by all
// models.
var auditProperties = []Property{
	{Attr: "created", Predicate: NSFedora + "created"},
	{Attr: "created_by", Predicate: NSFedora + "createdBy"},
	{Attr: "last_modified", Predicate: NSFedora + "lastModified"},
	{Attr: "last_modified_by", Predicate: NSFedora + "lastModifiedBy"},
}

// structuralProperties are the PCDM membership and ordering properties
// shared by the top-level models.
var structuralProperties = []Property{
	{Attr: "member_of", Predicate: NSPcdm + "memberOf", Kind: ObjectProperty},
	{Attr: "has_member", Predicate: NSPcdm + "hasMember", Kind: ObjectProperty, Repeatable: true, ObjectClass: "Page"},
	{Attr: "first", Predicate: NSIana + "first", Kind: ObjectProperty, Repeatable: true, ObjectClass: "Proxy", Embedded: true},
	{Attr: "last", Predicate: NSIana + "last", Kind: ObjectProperty, Repeatable: true},
}

func withCommon(props []Property) []Property {
	out := make([]Property, 0, len(props)+len(structuralProperties)+len(auditProperties))
	out = append(out, props...)
	out = append(out, structuralProperties...)
	out = append(out, auditProperties...)
	return out
}

var itemModel = &Model{
	Name:       "Item",
	TypeURI:    NSUmdModel + "Item",
	IsTopLevel: true,
	Properties: withCommon([]Property{
		{Attr: "title", Predicate: NSDcterms + "title"},
		{Attr: "date", Predicate: NSDcterms + "date"},
		{Attr: "identifier", Predicate: NSDcterms + "identifier", Repeatable: true},
		{Attr: "description", Predicate: NSDcterms + "description"},
		{Attr: "extent", Predicate: NSDcterms + "extent", Repeatable: true},
		{Attr: "language", Predicate: NSDcterms + "language", Repeatable: true},
		{Attr: "creator", Predicate: NSDcterms + "creator", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "contributor", Predicate: NSDcterms + "contributor", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "publisher", Predicate: NSDcterms + "publisher", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "subject", Predicate: NSDcterms + "subject", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "location", Predicate: NSDcterms + "spatial", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "format", Predicate: NSEdm + "hasType", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "rights", Predicate: NSDcterms + "rights", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "archival_collection", Predicate: NSDcterms + "isPartOf", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "presentation_set", Predicate: NSOre + "isAggregatedBy", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
	}),
}

var letterModel = &Model{
	Name:       "Letter",
	TypeURI:    NSUmdModel + "Letter",
	IsTopLevel: true,
	Properties: withCommon([]Property{
		{Attr: "title", Predicate: NSDcterms + "title"},
		{Attr: "date", Predicate: NSDce + "date"},
		{Attr: "identifier", Predicate: NSDcterms + "identifier", Repeatable: true},
		{Attr: "description", Predicate: NSDcterms + "description"},
		{Attr: "author", Predicate: NSRel + "aut", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "recipient", Predicate: NSRel + "rcp", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "place", Predicate: NSDcterms + "spatial", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "part_of", Predicate: NSDcterms + "isPartOf", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "subject", Predicate: NSDcterms + "subject", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
		{Attr: "language", Predicate: NSDce + "language", Repeatable: true},
		{Attr: "type", Predicate: NSEdm + "hasType", Repeatable: true},
		{Attr: "rights", Predicate: NSDce + "rights", Repeatable: true},
		{Attr: "extent", Predicate: NSDcterms + "extent", Repeatable: true},
		{Attr: "presentation_set", Predicate: NSOre + "isAggregatedBy", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
	}),
}

var posterModel = &Model{
	Name:       "Poster",
	TypeURI:    NSUmdModel + "Poster",
	IsTopLevel: true,
	Properties: withCommon([]Property{
		{Attr: "title", Predicate: NSDcterms + "title"},
		{Attr: "date", Predicate: NSDce + "date"},
		{Attr: "identifier", Predicate: NSDcterms + "identifier", Repeatable: true},
		{Attr: "description", Predicate: NSDcterms + "description"},
		{Attr: "language", Predicate: NSDce + "language", Repeatable: true},
		{Attr: "location", Predicate: NSDcterms + "spatial", Repeatable: true},
		{Attr: "publisher", Predicate: NSDce + "publisher", Repeatable: true},
		{Attr: "subject", Predicate: NSDce + "subject", Repeatable: true},
		{Attr: "format", Predicate: NSDce + "format", Repeatable: true},
		{Attr: "rights", Predicate: NSDce + "rights", Repeatable: true},
		{Attr: "part_of", Predicate: NSDcterms + "isPartOf"},
		{Attr: "presentation_set", Predicate: NSOre + "isAggregatedBy", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
	}),
}

var issueModel = &Model{
	Name:       "Issue",
	TypeURI:    NSUmdModel + "Issue",
	IsTopLevel: true,
	Properties: withCommon([]Property{
		{Attr: "title", Predicate: NSDcterms + "title"},
		{Attr: "date", Predicate: NSDce + "date"},
		{Attr: "volume", Predicate: NSBibo + "volume"},
		{Attr: "issue", Predicate: NSBibo + "issue"},
		{Attr: "edition", Predicate: NSBibo + "edition"},
		{Attr: "presentation_set", Predicate: NSOre + "isAggregatedBy", Kind: ObjectProperty, Repeatable: true, Vocabulary: true},
	}),
}

var adminSetModel = &Model{
	Name:       "AdminSet",
	TypeURI:    NSPcdm + "Collection",
	IsTopLevel: true,
	Properties: append([]Property{
		{Attr: "title", Predicate: NSDcterms + "title"},
	}, auditProperties...),
}

var pageModel = &Model{
	Name:       "Page",
	TypeURI:    NSPcdm + "Object",
	IsTopLevel: false,
	Properties: append([]Property{
		{Attr: "title", Predicate: NSDcterms + "title"},
		{Attr: "number", Predicate: NSBibo + "pageStart"},
		{Attr: "member_of", Predicate: NSPcdm + "memberOf", Kind: ObjectProperty},
		{Attr: "has_file", Predicate: NSPcdm + "hasFile", Kind: ObjectProperty, Repeatable: true, ObjectClass: "File"},
	}, auditProperties...),
}

var fileModel = &Model{
	Name:       "File",
	TypeURI:    NSPcdm + "File",
	IsTopLevel: false,
	Properties: append([]Property{
		{Attr: "title", Predicate: NSDcterms + "title"},
		{Attr: "filename", Predicate: NSEbucore + "filename"},
		{Attr: "mime_type", Predicate: NSEbucore + "hasMimeType"},
		{Attr: "file_of", Predicate: NSPcdm + "fileOf", Kind: ObjectProperty},
	}, auditProperties...),
}

var proxyModel = &Model{
	Name:       "Proxy",
	TypeURI:    NSOre + "Proxy",
	IsTopLevel: false,
	Properties: []Property{
		{Attr: "title", Predicate: NSDcterms + "title"},
		{Attr: "proxy_for", Predicate: NSOre + "proxyFor", Kind: ObjectProperty},
		{Attr: "proxy_in", Predicate: NSOre + "proxyIn", Kind: ObjectProperty},
		{Attr: "next", Predicate: NSIana + "next", Kind: ObjectProperty, Repeatable: true, ObjectClass: "Proxy", Embedded: true},
	},
}

// catalog lists the known models in match order: the specific top-level
// models come before the generic structural ones.
var catalog = []*Model{
	itemModel,
	letterModel,
	posterModel,
	issueModel,
	adminSetModel,
	proxyModel,
	fileModel,
	pageModel,
}

// Models returns the full content-model catalog.
func Models() []*Model {
	return catalog
}

// Lookup returns the model with the given name.
func Lookup(name string) (*Model, bool) {
	for _, m := range catalog {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// GuessModel determines the content model of the subject from its
// rdf:type statements. Specific models win over generic ones.
func GuessModel(g *Graph, subject string) (*Model, error) {
	for _, m := range catalog {
		if g.Has(subject, RDFType, m.TypeURI) {
			return m, nil
		}
	}
	return nil, errors.Newf(errors.ErrCodeUnknownModel, "unable to determine content model for %s", subject)
}
