package indexers

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"solrizer/internal/errors"
	"solrizer/internal/rdf"
)

// suffixByAttr maps property attribute names to their field suffix
// when the datatype alone does not determine it.
var suffixByAttr = map[string]string{
	"created_by":       "__str",
	"date":             "__edtf",
	"filename":         "__str",
	"identifier":       "__id",
	"last_modified_by": "__str",
	"mime_type":        "__str",
}

// ContentModelFields generates fields from the resource's content
// model. Data properties become typed fields named
// {model}__{attr}__{suffix}, with a plural "s" for repeatable
// properties. Object properties become __uri and __curie fields plus,
// depending on the property, vocabulary label fields or nested child
// documents.
func ContentModelFields(ctx context.Context, ic *Context) (Doc, error) {
	return modelFields(ctx, ic.Repo, ic.Resource.Graph, ic.Resource.URI, ic.Model, ic.Logger())
}

func modelFields(ctx context.Context, repo Repo, g *rdf.Graph, subject string, model *rdf.Model, log *slog.Logger) (Doc, error) {
	log.Debug("converting resource", "uri", subject, "model", model.Name)

	fields := Doc{
		"content_model_name__str":   model.Name,
		"content_model_prefix__str": model.Prefix(),
	}

	if types := g.Types(subject); len(types) > 0 {
		curies := make([]string, len(types))
		for i, t := range types {
			curies[i] = rdf.CURIE(t)
		}
		fields[model.Prefix()+"__rdf_type__uris"] = types
		fields[model.Prefix()+"__rdf_type__curies"] = curies
	}

	for _, prop := range model.Properties {
		terms := g.Objects(subject, prop.Predicate)
		if len(terms) == 0 {
			continue
		}
		var (
			propFields Doc
			err        error
		)
		if prop.Kind == rdf.ObjectProperty {
			propFields, err = objectFields(ctx, repo, g, model, prop, terms, log)
		} else {
			propFields, err = dataFields(model.Prefix()+"__"+prop.Attr, prop, terms)
		}
		if err != nil {
			return nil, err
		}
		for k, v := range propFields {
			fields[k] = v
		}
	}

	return fields, nil
}

// dataFields converts a data property's literal values into typed
// fields. The suffix is chosen by datatype first, then by attribute
// name. Everything else is treated as text, split by language tag,
// with a __display field holding every value.
func dataFields(name string, prop rdf.Property, terms []rdf.Term) (Doc, error) {
	switch terms[0].Datatype {
	case rdf.XsdInt, rdf.XsdInteger, rdf.XsdLong:
		values := make([]any, 0, len(terms))
		for _, t := range terms {
			n, err := strconv.Atoi(t.Value)
			if err != nil {
				return nil, errors.Newf(errors.ErrCodeIndexerFailed,
					"cannot convert %q to an integer for field %s", t.Value, name)
			}
			values = append(values, n)
		}
		return field(name, "__int", values, prop.Repeatable), nil
	case rdf.XsdDateTime:
		values := make([]any, 0, len(terms))
		for _, t := range terms {
			dt, err := solrDateTime(t.Value)
			if err != nil {
				return nil, errors.Newf(errors.ErrCodeIndexerFailed,
					"cannot convert %q to a datetime for field %s", t.Value, name)
			}
			values = append(values, dt)
		}
		return field(name, "__dt", values, prop.Repeatable), nil
	case rdf.DatatypeHandle, rdf.DatatypeAccessionNumber:
		return field(name, "__id", termValues(terms), prop.Repeatable), nil
	}

	if suffix, ok := suffixByAttr[prop.Attr]; ok {
		return field(name, suffix, termValues(terms), prop.Repeatable), nil
	}

	return textFields(name, prop, terms)
}

// textFields splits the values by language tag into __txt_{lang}
// fields and adds a __display field with every value, language tags
// embedded as [@tag]value.
func textFields(name string, prop rdf.Property, terms []rdf.Term) (Doc, error) {
	fields := make(Doc)
	seen := make(map[string]bool)
	for _, t := range terms {
		if seen[t.Lang] {
			continue
		}
		seen[t.Lang] = true

		suffix := "__txt"
		if t.Lang != "" {
			tag, err := languageSuffix(t.Lang)
			if err != nil {
				return nil, err
			}
			suffix += tag
		}
		var values []any
		for _, other := range terms {
			if other.Lang == t.Lang {
				values = append(values, other.Value)
			}
		}
		for k, v := range field(name, suffix, values, prop.Repeatable) {
			fields[k] = v
		}
	}

	display := make([]any, 0, len(terms))
	for _, t := range terms {
		display = append(display, displayValue(t))
	}
	fields[name+"__display"] = display

	return fields, nil
}

// objectFields converts an object property's IRI values into __uri and
// __curie fields. Vocabulary properties also get label and same_as
// fields read from the graph. Properties with an object class get a
// nested child document per object, decoded from the same graph for
// embedded objects or fetched from the repository for linked ones.
func objectFields(ctx context.Context, repo Repo, g *rdf.Graph, model *rdf.Model, prop rdf.Property, terms []rdf.Term, log *slog.Logger) (Doc, error) {
	name := model.Prefix() + "__" + prop.Attr

	uris := make([]any, 0, len(terms))
	curies := make([]any, 0, len(terms))
	for _, t := range terms {
		uris = append(uris, t.Value)
		curies = append(curies, rdf.CURIE(t.Value))
	}

	fields := make(Doc)
	for k, v := range field(name, "__uri", uris, prop.Repeatable) {
		fields[k] = v
	}
	for k, v := range field(name, "__curie", curies, prop.Repeatable) {
		fields[k] = v
	}

	if prop.Vocabulary {
		vocabFields, err := vocabularyTermFields(g, name, terms[0].Value)
		if err != nil {
			return nil, err
		}
		for k, v := range vocabFields {
			fields[k] = v
		}
		return fields, nil
	}

	if prop.ObjectClass == "" {
		return fields, nil
	}

	childModel, ok := rdf.Lookup(prop.ObjectClass)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownModel,
			"property %s references unknown content model %q", prop.Attr, prop.ObjectClass)
	}

	var children []Doc
	for _, t := range terms {
		var (
			child Doc
			err   error
		)
		switch {
		case prop.Embedded:
			if !g.Describes(t.Value) {
				log.Debug("embedded object not described in graph", "uri", t.Value)
				continue
			}
			child, err = modelFields(ctx, repo, g, t.Value, childModel, log)
		case repo != nil && repo.Contains(t.Value):
			var res *rdf.Resource
			res, err = repo.Get(ctx, t.Value)
			if err == nil {
				child, err = modelFields(ctx, repo, res.Graph, res.URI, childModel, log)
			}
		default:
			log.Debug("skipping linked object outside the repository", "uri", t.Value)
			continue
		}
		if err != nil {
			return nil, err
		}
		childDoc := Doc{"id": t.Value}
		for k, v := range child {
			childDoc[k] = v
		}
		children = append(children, childDoc)
	}
	if len(children) > 0 {
		fields[name] = children
	}

	return fields, nil
}

// vocabularyTermFields reads the rdfs:label and owl:sameAs statements
// of the first vocabulary term and folds them in as sibling fields.
func vocabularyTermFields(g *rdf.Graph, name, termURI string) (Doc, error) {
	fields := make(Doc)

	if labels := g.Objects(termURI, rdf.RDFSLabel); len(labels) > 0 {
		labelFields, err := textFields(name+"__label", rdf.Property{Attr: "label", Repeatable: true}, labels)
		if err != nil {
			return nil, err
		}
		for k, v := range labelFields {
			fields[k] = v
		}
	}

	if sameAs := g.Objects(termURI, rdf.OwlSameAs); len(sameAs) > 0 {
		uris := make([]any, 0, len(sameAs))
		for _, t := range sameAs {
			uris = append(uris, t.Value)
		}
		fields[name+"__same_as__uris"] = uris
	}

	return fields, nil
}

// field builds the {name}{suffix} entry. Repeatable properties take a
// plural "s" after the suffix and hold every value; others hold the
// first value only.
func field(name, suffix string, values []any, repeatable bool) Doc {
	if repeatable {
		return Doc{name + suffix + "s": values}
	}
	return Doc{name + suffix: values[0]}
}

func termValues(terms []rdf.Term) []any {
	out := make([]any, len(terms))
	for i, t := range terms {
		out[i] = t.Value
	}
	return out
}

// languageSuffix normalizes a language tag to a field suffix: the
// canonical tag, lowercased, with "-" replaced by "_" and a leading
// "_". Three-letter codes collapse to their two-letter equivalents.
func languageSuffix(tag string) (string, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", errors.Newf(errors.ErrCodeIndexerFailed,
			"unable to determine language suffix from %q", tag)
	}
	return "_" + strings.ReplaceAll(strings.ToLower(parsed.String()), "-", "_"), nil
}

// displayValue renders a literal with its language tag embedded as
// [@tag]value. Untagged values pass through unchanged.
func displayValue(t rdf.Term) string {
	if t.Lang == "" {
		return t.Value
	}
	tag, err := languageSuffix(t.Lang)
	if err != nil {
		return t.Value
	}
	return "[@" + strings.ReplaceAll(strings.TrimPrefix(tag, "_"), "_", "-") + "]" + t.Value
}
