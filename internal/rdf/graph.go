// Package rdf models the resource graphs fetched from the repository:
// a triple graph with subject/predicate lookup, the namespace table used
// for CURIE shortening, and the content-model catalog that drives field
// generation.
package rdf

import (
	"io"
	"sort"

	knakk "github.com/knakk/rdf"
)

// Format identifies a serialization of the resource graph.
type Format int

const (
	// FormatNTriples is application/n-triples.
	FormatNTriples Format = iota
	// FormatTurtle is text/turtle.
	FormatTurtle
)

func (f Format) knakk() knakk.Format {
	if f == FormatTurtle {
		return knakk.Turtle
	}
	return knakk.NTriples
}

// Term is one object of a statement: either an IRI or a literal with
// optional language tag and datatype.
type Term struct {
	Value    string
	Lang     string
	Datatype string
	IRI      bool
}

func (t Term) String() string { return t.Value }

// Graph is an immutable-after-build set of statements indexed by
// subject and predicate. Object order follows insertion order, so a
// graph decoded from the same bytes always yields the same iteration
// order.
type Graph struct {
	subjects map[string]map[string][]Term
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{subjects: make(map[string]map[string][]Term)}
}

// Add appends a statement to the graph.
func (g *Graph) Add(subject, predicate string, obj Term) {
	preds, ok := g.subjects[subject]
	if !ok {
		preds = make(map[string][]Term)
		g.subjects[subject] = preds
	}
	preds[predicate] = append(preds[predicate], obj)
}

// AddIRI appends a statement whose object is an IRI.
func (g *Graph) AddIRI(subject, predicate, iri string) {
	g.Add(subject, predicate, Term{Value: iri, IRI: true})
}

// AddLiteral appends a statement whose object is a plain literal.
func (g *Graph) AddLiteral(subject, predicate, value string) {
	g.Add(subject, predicate, Term{Value: value})
}

// Decode reads statements in the given serialization into a graph.
func Decode(r io.Reader, format Format) (*Graph, error) {
	dec := knakk.NewTripleDecoder(r, format.knakk())
	triples, err := dec.DecodeAll()
	if err != nil {
		return nil, err
	}

	g := NewGraph()
	for _, tr := range triples {
		var term Term
		switch o := tr.Obj.(type) {
		case knakk.IRI:
			term = Term{Value: o.String(), IRI: true}
		case knakk.Literal:
			term = Term{Value: o.String(), Lang: o.Lang(), Datatype: o.DataType.String()}
		default:
			term = Term{Value: tr.Obj.String()}
		}
		g.Add(tr.Subj.String(), tr.Pred.String(), term)
	}
	return g, nil
}

// Objects returns the objects of all statements with the given subject
// and predicate, in insertion order.
func (g *Graph) Objects(subject, predicate string) []Term {
	preds, ok := g.subjects[subject]
	if !ok {
		return nil
	}
	return preds[predicate]
}

// Object returns the first object for the subject and predicate.
func (g *Graph) Object(subject, predicate string) (Term, bool) {
	objs := g.Objects(subject, predicate)
	if len(objs) == 0 {
		return Term{}, false
	}
	return objs[0], true
}

// Has reports whether the statement (subject, predicate, iri) is in the
// graph.
func (g *Graph) Has(subject, predicate, iri string) bool {
	for _, t := range g.Objects(subject, predicate) {
		if t.IRI && t.Value == iri {
			return true
		}
	}
	return false
}

// Describes reports whether the graph holds any statements about the
// subject.
func (g *Graph) Describes(subject string) bool {
	return len(g.subjects[subject]) > 0
}

// Types returns the rdf:type IRIs of the subject.
func (g *Graph) Types(subject string) []string {
	var types []string
	for _, t := range g.Objects(subject, RDFType) {
		if t.IRI {
			types = append(types, t.Value)
		}
	}
	return types
}

// Predicates returns the sorted predicates used with the subject.
func (g *Graph) Predicates(subject string) []string {
	preds := make([]string, 0, len(g.subjects[subject]))
	for p := range g.subjects[subject] {
		preds = append(preds, p)
	}
	sort.Strings(preds)
	return preds
}

// Literals returns every (predicate, literal) pair for the subject
// whose literal has the given datatype, in sorted predicate order.
func (g *Graph) LiteralsWithDatatype(subject, datatype string) []Term {
	var out []Term
	for _, p := range g.Predicates(subject) {
		for _, t := range g.subjects[subject][p] {
			if !t.IRI && t.Datatype == datatype {
				out = append(out, t)
			}
		}
	}
	return out
}

// FindSubjects returns the sorted subjects that have the statement
// (subject, predicate, iri).
func (g *Graph) FindSubjects(predicate, iri string) []string {
	var out []string
	for subject := range g.subjects {
		if g.Has(subject, predicate, iri) {
			out = append(out, subject)
		}
	}
	sort.Strings(out)
	return out
}

// Resource is one repository resource: its URI, repository-relative
// path, and the graph of statements describing it. DescriptionURL is
// set for non-RDF sources that are described by a separate resource.
type Resource struct {
	URI            string
	Path           string
	DescriptionURL string
	Graph          *Graph
}

// Types returns the rdf:type IRIs of the resource itself.
func (r *Resource) Types() []string {
	return r.Graph.Types(r.URI)
}
