package indexers

import (
	"context"
	"sort"

	"github.com/itchyny/gojq"

	"solrizer/internal/errors"
)

// AggregateFields builds fields by running jq queries against the
// current state of the document. The indexer settings map each output
// field name to a list of query strings; query results are
// concatenated, so every output field is multivalued. Null results are
// dropped.
func AggregateFields(_ context.Context, ic *Context) (Doc, error) {
	fieldNames := make([]string, 0, len(ic.Settings))
	for name := range ic.Settings {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	input := normalize(ic.Doc)

	fields := make(Doc)
	for _, name := range fieldNames {
		var values []any
		for _, program := range settingStrings(ic.Settings[name]) {
			query, err := gojq.Parse(program)
			if err != nil {
				return nil, errors.ConfigError(
					"unable to compile aggregate field query for "+name, err)
			}
			iter := query.Run(input)
			for {
				v, ok := iter.Next()
				if !ok {
					break
				}
				if queryErr, isErr := v.(error); isErr {
					ic.Logger().Warn("aggregate field query failed",
						"field", name, "error", queryErr)
					continue
				}
				if v == nil {
					continue
				}
				values = append(values, v)
			}
		}
		fields[name] = values
	}

	return fields, nil
}

func settingStrings(v any) []string {
	var out []string
	for _, item := range ValueList(v) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// normalize converts a document to the plain JSON-style value tree the
// query engine expects: maps, slices, strings, numbers, booleans.
func normalize(v any) any {
	switch x := v.(type) {
	case Doc:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
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
			out[i] = normalize(d)
		}
		return out
	default:
		return v
	}
}
