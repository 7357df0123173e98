package indexers

import (
	"context"
	"sort"
	"strings"

	"solrizer/internal/edtf"
)

// DateFields creates a Solr-parseable __dt field for every __edtf
// field in the document, along with boolean flags recording the
// uncertain (?), approximate (~), and uncertain-and-approximate (%)
// markers. Values that cannot be parsed, or that parse but have no
// Solr date representation, are logged and skipped.
func DateFields(_ context.Context, ic *Context) (Doc, error) {
	var edtfFields []string
	for name := range ic.Doc {
		if strings.HasSuffix(name, "__edtf") {
			edtfFields = append(edtfFields, name)
		}
	}
	sort.Strings(edtfFields)

	fields := make(Doc)
	for _, edtfName := range edtfFields {
		value, ok := ic.Doc[edtfName].(string)
		if !ok {
			continue
		}
		name := strings.TrimSuffix(edtfName, "__edtf")

		parsed, err := edtf.Parse(value)
		if err != nil {
			ic.Logger().Warn("cannot parse value as an EDTF string",
				"field", edtfName, "value", value)
			continue
		}
		solrDate, err := edtf.SolrDate(parsed)
		if err != nil {
			ic.Logger().Warn("cannot convert value to a Solr date",
				"field", edtfName, "value", value, "error", err)
			continue
		}

		fields[name+"__dt"] = solrDate
		fields[name+"__dt_is_uncertain"] = edtf.IsUncertain(parsed)
		fields[name+"__dt_is_approximate"] = edtf.IsApproximate(parsed)
		fields[name+"__dt_is_uncertain_and_approximate"] = edtf.IsUncertainApproximate(parsed)
	}

	return fields, nil
}
