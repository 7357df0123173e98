package indexers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solrizer/internal/rdf"
)

func TestIIIFIdentifier(t *testing.T) {
	assert.Equal(t, "foo:bar", IIIFIdentifier("/foo/bar", ""))
	assert.Equal(t, "fcrepo:foo:bar", IIIFIdentifier("/foo/bar", "fcrepo:"))
}

func TestIIIFLinksFields(t *testing.T) {
	repo := newFakeRepo(testEndpoint)
	res := &rdf.Resource{
		URI:   testEndpoint + "/obj1",
		Path:  "/obj1",
		Graph: rdf.NewGraph(),
	}

	doc := pagedDoc("item")
	fileURIs := map[string]string{
		"http://repo.example/p1": testEndpoint + "/files/p1",
		"http://repo.example/p2": testEndpoint + "/files/p2",
		"http://repo.example/p3": testEndpoint + "/files/p3",
	}
	for _, page := range childDocs(doc["item__has_member"]) {
		page["page__has_file"] = []Doc{{"id": fileURIs[page["id"].(string)]}}
	}

	ic := newTestContext(t, repo, res, itemModel(t))
	ic.Doc = doc
	ic.Config = map[string]string{
		ConfigIIIFIdentifierPrefix:  "fcrepo:",
		ConfigIIIFManifestsPattern:  "https://iiif.example/manifests/{+id}",
		ConfigIIIFThumbnailsPattern: "https://iiif.example/images/{+id}/thumbnail",
	}

	fields, err := IIIFLinksFields(context.Background(), ic)
	require.NoError(t, err)

	assert.Equal(t, "fcrepo:obj1", fields["iiif_manifest__id"])
	assert.Equal(t, "https://iiif.example/manifests/fcrepo:obj1", fields["iiif_manifest__uri"])

	ids, ok := fields["iiif_thumbnail_identifier__sequence"].([]any)
	require.True(t, ok)
	require.Len(t, ids, 3)
	assert.Equal(t, "fcrepo:files:p1", ids[0])

	uris, ok := fields["iiif_thumbnail_uri__sequence"].([]any)
	require.True(t, ok)
	assert.Equal(t, "https://iiif.example/images/fcrepo:files:p1/thumbnail", uris[0])
}

func TestIIIFLinksFieldsBadPattern(t *testing.T) {
	repo := newFakeRepo(testEndpoint)
	res := &rdf.Resource{URI: testEndpoint + "/obj1", Path: "/obj1", Graph: rdf.NewGraph()}
	ic := newTestContext(t, repo, res, itemModel(t))
	ic.Config = map[string]string{
		ConfigIIIFManifestsPattern: "https://iiif.example/manifests/{id",
	}

	_, err := IIIFLinksFields(context.Background(), ic)
	assert.Error(t, err)
}
