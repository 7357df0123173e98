package indexers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solrizer/internal/rdf"
)

const testEndpoint = "http://repo.example/fcrepo/rest"

func buildItemGraph(t *testing.T, itemURI, pageURI string) *rdf.Graph {
	t.Helper()
	g := rdf.NewGraph()
	g.AddIRI(itemURI, rdf.RDFType, rdf.NSUmdModel+"Item")
	g.AddIRI(itemURI, rdf.RDFType, rdf.TypePublished)
	g.Add(itemURI, rdf.NSDcterms+"title", rdf.Term{Value: "Stories", Lang: "en"})
	g.AddLiteral(itemURI, rdf.NSDcterms+"identifier", "umd:12345")
	g.AddLiteral(itemURI, rdf.NSDcterms+"date", "1923~")
	g.Add(itemURI, rdf.NSFedora+"created",
		rdf.Term{Value: "2024-01-01T12:00:00Z", Datatype: rdf.XsdDateTime})

	creator := "http://vocab.lib.umd.edu/agent#n1"
	g.AddIRI(itemURI, rdf.NSDcterms+"creator", creator)
	g.AddLiteral(creator, rdf.RDFSLabel, "Jane Author")
	g.AddIRI(creator, rdf.OwlSameAs, "http://id.loc.gov/authorities/names/n00000001")

	g.AddIRI(itemURI, rdf.NSPcdm+"hasMember", pageURI)

	proxy := itemURI + "#first"
	g.AddIRI(itemURI, rdf.NSIana+"first", proxy)
	g.AddIRI(proxy, rdf.RDFType, rdf.NSOre+"Proxy")
	g.AddIRI(proxy, rdf.NSOre+"proxyFor", pageURI)

	return g
}

func TestContentModelFields(t *testing.T) {
	itemURI := testEndpoint + "/obj1"
	pageURI := testEndpoint + "/obj1/p1"

	repo := newFakeRepo(testEndpoint)
	pageGraph := rdf.NewGraph()
	pageGraph.AddIRI(pageURI, rdf.RDFType, rdf.NSPcdm+"Object")
	pageGraph.AddLiteral(pageURI, rdf.NSDcterms+"title", "Page 1")
	repo.add(pageURI, pageGraph)

	res := repo.add(itemURI, buildItemGraph(t, itemURI, pageURI))
	ic := newTestContext(t, repo, res, itemModel(t))

	fields, err := ContentModelFields(context.Background(), ic)
	require.NoError(t, err)

	assert.Equal(t, "Item", fields["content_model_name__str"])
	assert.Equal(t, "item", fields["content_model_prefix__str"])

	assert.Contains(t, fields["item__rdf_type__curies"], "umd:Item")
	assert.Contains(t, fields["item__rdf_type__curies"], "umdaccess:Published")

	assert.Equal(t, "Stories", fields["item__title__txt_en"])
	assert.Equal(t, []any{"[@en]Stories"}, fields["item__title__display"])
	assert.Equal(t, []any{"umd:12345"}, fields["item__identifier__ids"])
	assert.Equal(t, "1923~", fields["item__date__edtf"])
	assert.Equal(t, "2024-01-01T12:00:00Z", fields["item__created__dt"])
}

func TestContentModelFieldsVocabulary(t *testing.T) {
	itemURI := testEndpoint + "/obj1"
	pageURI := testEndpoint + "/obj1/p1"

	repo := newFakeRepo(testEndpoint)
	repo.add(pageURI, rdf.NewGraph())
	res := repo.add(itemURI, buildItemGraph(t, itemURI, pageURI))
	ic := newTestContext(t, repo, res, itemModel(t))

	fields, err := ContentModelFields(context.Background(), ic)
	require.NoError(t, err)

	assert.Equal(t, []any{"http://vocab.lib.umd.edu/agent#n1"}, fields["item__creator__uris"])
	assert.Equal(t, []any{"Jane Author"}, fields["item__creator__label__txts"])
	assert.Equal(t, []any{"http://id.loc.gov/authorities/names/n00000001"},
		fields["item__creator__same_as__uris"])
}

func TestContentModelFieldsChildDocuments(t *testing.T) {
	itemURI := testEndpoint + "/obj1"
	pageURI := testEndpoint + "/obj1/p1"

	repo := newFakeRepo(testEndpoint)
	pageGraph := rdf.NewGraph()
	pageGraph.AddIRI(pageURI, rdf.RDFType, rdf.NSPcdm+"Object")
	pageGraph.AddLiteral(pageURI, rdf.NSDcterms+"title", "Page 1")
	repo.add(pageURI, pageGraph)

	res := repo.add(itemURI, buildItemGraph(t, itemURI, pageURI))
	ic := newTestContext(t, repo, res, itemModel(t))

	fields, err := ContentModelFields(context.Background(), ic)
	require.NoError(t, err)

	// linked member fetched from the repository
	members, ok := fields["item__has_member"].([]Doc)
	require.True(t, ok)
	require.Len(t, members, 1)
	assert.Equal(t, pageURI, members[0]["id"])
	assert.Equal(t, "Page", members[0]["content_model_name__str"])
	assert.Equal(t, "Page 1", members[0]["page__title__txt"])

	// embedded proxy described in the same graph
	proxies, ok := fields["item__first"].([]Doc)
	require.True(t, ok)
	require.Len(t, proxies, 1)
	assert.Equal(t, pageURI, proxies[0]["proxy__proxy_for__uri"])
}

func TestContentModelFieldsIntegers(t *testing.T) {
	pageURI := testEndpoint + "/obj1/p1"
	g := rdf.NewGraph()
	g.AddIRI(pageURI, rdf.RDFType, rdf.NSPcdm+"Object")
	g.Add(pageURI, rdf.NSBibo+"pageStart", rdf.Term{Value: "17", Datatype: rdf.XsdInteger})

	repo := newFakeRepo(testEndpoint)
	res := repo.add(pageURI, g)
	model, ok := rdf.Lookup("Page")
	require.True(t, ok)
	ic := newTestContext(t, repo, res, model)

	fields, err := ContentModelFields(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, 17, fields["page__number__int"])
}

func TestLanguageSuffix(t *testing.T) {
	cases := []struct {
		tag  string
		want string
	}{
		{"en", "_en"},
		{"en-US", "_en_us"},
		{"ja-Latn", "_ja_latn"},
		{"eng", "_en"},
	}
	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			got, err := languageSuffix(tc.tag)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := languageSuffix("!!not-a-tag!!")
	assert.Error(t, err)
}

func TestSolrDateTime(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2024-01-01T12:00:00Z", "2024-01-01T12:00:00Z"},
		{"2024-01-01T12:00:00+05:00", "2024-01-01T07:00:00Z"},
		{"2024-01-01T12:00:00", "2024-01-01T12:00:00Z"},
		{"2024-01-01", "2024-01-01T00:00:00Z"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := solrDateTime(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := solrDateTime("2024")
	assert.Error(t, err)
}
