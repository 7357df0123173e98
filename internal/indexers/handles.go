package indexers

import (
	"context"

	"solrizer/internal/handle"
	"solrizer/internal/rdf"
)

// ConfigHandleProxyPrefix is the indexer setting naming the base URL
// of the handle resolution proxy.
const ConfigHandleProxyPrefix = "proxy_prefix"

// HandleFields adds identifier fields for the resource's handle in
// several formats. The handle is the first literal in the graph with
// the umdtype:handle datatype; resources without one produce no
// fields.
func HandleFields(_ context.Context, ic *Context) (Doc, error) {
	literals := ic.Resource.Graph.LiteralsWithDatatype(ic.Resource.URI, rdf.DatatypeHandle)
	if len(literals) == 0 {
		return Doc{}, nil
	}

	proxyPrefix, _ := ic.StringSetting(ConfigHandleProxyPrefix)
	h, err := handle.Parse(literals[0].Value, proxyPrefix)
	if err != nil {
		ic.Logger().Warn("cannot parse handle value",
			"uri", ic.Resource.URI, "value", literals[0].Value, "error", err)
		return Doc{}, nil
	}

	return Doc{
		"handle__id":          h.String(),
		"handle__uri":         h.InfoURI(),
		"handle_proxied__uri": h.ProxyURL(proxyPrefix),
	}, nil
}
