package indexers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solrizer/internal/rdf"
)

func TestHandleFields(t *testing.T) {
	uri := testEndpoint + "/obj1"
	g := rdf.NewGraph()
	g.Add(uri, rdf.NSDcterms+"identifier",
		rdf.Term{Value: "hdl:1903.1/12345", Datatype: rdf.DatatypeHandle})

	repo := newFakeRepo(testEndpoint)
	res := repo.add(uri, g)
	ic := newTestContext(t, repo, res, itemModel(t))
	ic.Settings = map[string]any{ConfigHandleProxyPrefix: "https://hdl.handle.net/"}

	fields, err := HandleFields(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, "1903.1/12345", fields["handle__id"])
	assert.Equal(t, "info:hdl/1903.1/12345", fields["handle__uri"])
	assert.Equal(t, "https://hdl.handle.net/1903.1/12345", fields["handle_proxied__uri"])
}

func TestHandleFieldsWithoutHandle(t *testing.T) {
	uri := testEndpoint + "/obj1"
	g := rdf.NewGraph()
	g.AddLiteral(uri, rdf.NSDcterms+"identifier", "not-a-handle")

	repo := newFakeRepo(testEndpoint)
	res := repo.add(uri, g)
	ic := newTestContext(t, repo, res, itemModel(t))

	fields, err := HandleFields(context.Background(), ic)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestDescribedByField(t *testing.T) {
	repo := newFakeRepo(testEndpoint)

	rdfSource := &rdf.Resource{URI: testEndpoint + "/obj1", Graph: rdf.NewGraph()}
	ic := newTestContext(t, repo, rdfSource, itemModel(t))
	fields, err := DescribedByField(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, testEndpoint+"/obj1", fields["described_by__uri"])

	binarySource := &rdf.Resource{
		URI:            testEndpoint + "/obj1/f1",
		DescriptionURL: testEndpoint + "/obj1/f1/fcr:metadata",
		Graph:          rdf.NewGraph(),
	}
	ic = newTestContext(t, repo, binarySource, itemModel(t))
	fields, err = DescribedByField(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, testEndpoint+"/obj1/f1/fcr:metadata", fields["described_by__uri"])
}
