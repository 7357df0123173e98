package indexers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solrizer/internal/rdf"
)

func TestRootFieldTopLevel(t *testing.T) {
	repo := newFakeRepo(testEndpoint)
	res := repo.add(testEndpoint+"/obj1", rdf.NewGraph())
	ic := newTestContext(t, repo, res, itemModel(t))

	fields, err := RootField(context.Background(), ic)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestRootFieldWalksToTopLevel(t *testing.T) {
	itemURI := testEndpoint + "/obj1"
	pageURI := testEndpoint + "/obj1/p1"
	fileURI := testEndpoint + "/obj1/p1/f1"

	repo := newFakeRepo(testEndpoint)

	itemGraph := rdf.NewGraph()
	itemGraph.AddIRI(itemURI, rdf.RDFType, rdf.NSUmdModel+"Item")
	repo.add(itemURI, itemGraph)

	pageGraph := rdf.NewGraph()
	pageGraph.AddIRI(pageURI, rdf.RDFType, rdf.NSPcdm+"Object")
	pageGraph.AddIRI(pageURI, rdf.NSPcdm+"memberOf", itemURI)
	repo.add(pageURI, pageGraph)

	fileGraph := rdf.NewGraph()
	fileGraph.AddIRI(fileURI, rdf.RDFType, rdf.NSPcdm+"File")
	fileGraph.AddIRI(fileURI, rdf.NSPcdm+"fileOf", pageURI)
	fileRes := repo.add(fileURI, fileGraph)

	fileModel, ok := rdf.Lookup("File")
	require.True(t, ok)
	ic := newTestContext(t, repo, fileRes, fileModel)

	fields, err := RootField(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, itemURI, fields["_root_"])
}

func TestRootFieldWithoutParent(t *testing.T) {
	pageURI := testEndpoint + "/obj1/p1"
	repo := newFakeRepo(testEndpoint)
	pageGraph := rdf.NewGraph()
	pageGraph.AddIRI(pageURI, rdf.RDFType, rdf.NSPcdm+"Object")
	res := repo.add(pageURI, pageGraph)

	pageModel, ok := rdf.Lookup("Page")
	require.True(t, ok)
	ic := newTestContext(t, repo, res, pageModel)

	_, err := RootField(context.Background(), ic)
	assert.Error(t, err)
}
