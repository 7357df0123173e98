// Package indexers turns repository resources into Solr index
// documents. Each indexer is a function that reads the resource graph
// or the accumulated document and returns the fields it contributes.
// The pipeline runs a configured list of indexers in order and merges
// their output.
package indexers

import (
	"context"
	"log/slog"
	"strings"

	"solrizer/internal/rdf"
)

// Doc is a Solr index document: field names mapped to values. Values
// are strings, ints, bools, lists of those, or nested documents.
type Doc map[string]any

// Repo is the repository access the indexers need.
type Repo interface {
	Get(ctx context.Context, uri string) (*rdf.Resource, error)
	GetBinary(ctx context.Context, uri string) ([]byte, string, error)
	Contains(uri string) bool
	Path(uri string) string
}

// Context carries everything needed to index one resource. Doc is the
// accumulated document, updated after each indexer runs, so later
// indexers can read earlier output.
type Context struct {
	Repo     Repo
	Resource *rdf.Resource
	Model    *rdf.Model
	Doc      Doc
	// Config holds application-level values shared by all indexers.
	Config map[string]string
	// Settings holds the per-indexer settings. The pipeline swaps this
	// in before each indexer runs.
	Settings map[string]any
	Log      *slog.Logger
}

// Indexer produces the fields one indexer contributes to the document.
type Indexer func(ctx context.Context, ic *Context) (Doc, error)

// Prefix returns the field-name prefix for the resource's content
// model.
func (ic *Context) Prefix() string {
	return ic.Model.Prefix()
}

// Logger returns the context logger, or the default logger when none
// was set.
func (ic *Context) Logger() *slog.Logger {
	if ic.Log != nil {
		return ic.Log
	}
	return slog.Default()
}

// StringSetting returns a string-valued indexer setting.
func (ic *Context) StringSetting(key string) (string, bool) {
	v, ok := ic.Settings[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntSetting returns an integer-valued indexer setting.
func (ic *Context) IntSetting(key string) (int, bool) {
	switch v := ic.Settings[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// ConfigValue returns an application-level configuration value.
func (ic *Context) ConfigValue(key string) string {
	return ic.Config[key]
}

// DocStrings returns the field's values as strings. Scalar fields
// yield a single-element slice.
func (ic *Context) DocStrings(field string) []string {
	var out []string
	for _, v := range ValueList(ic.Doc[field]) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// DocChildren returns the field's values as nested documents.
func (ic *Context) DocChildren(field string) []Doc {
	var out []Doc
	for _, v := range ValueList(ic.Doc[field]) {
		switch d := v.(type) {
		case Doc:
			out = append(out, d)
		case map[string]any:
			out = append(out, Doc(d))
		}
	}
	return out
}

// ValueList normalizes a field value to a slice. A nil value yields
// nil, a scalar yields a one-element slice.
func ValueList(v any) []any {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		return x
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case []int:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out
	case []Doc:
		out := make([]any, len(x))
		for i, d := range x {
			out[i] = d
		}
		return out
	default:
		return []any{v}
	}
}

// singularSuffixes are the field suffixes whose plural form (trailing
// "s") marks a multivalued field.
var singularSuffixes = map[string]bool{
	"str":     true,
	"int":     true,
	"id":      true,
	"dt":      true,
	"edtf":    true,
	"txt":     true,
	"dps_txt": true,
	"uri":     true,
	"curie":   true,
}

// Multivalued reports whether the field name denotes a multivalued
// field. Plural suffixes ("__uris", "__txts", "__txt_ens"), facet
// fields, sequence fields, and display fields are multivalued.
func Multivalued(field string) bool {
	i := strings.LastIndex(field, "__")
	if i < 0 {
		return false
	}
	suffix := field[i+2:]
	switch suffix {
	case "facet", "sequence", "display":
		return true
	}
	base, ok := strings.CutSuffix(suffix, "s")
	if !ok {
		return false
	}
	if singularSuffixes[base] {
		return true
	}
	// language-tagged text fields: txt_{lang}s
	return strings.HasPrefix(base, "txt_")
}
