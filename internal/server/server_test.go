package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solrizer/internal/config"
	"solrizer/internal/errors"
	"solrizer/internal/indexers"
	"solrizer/internal/rdf"
)

type stubRepo struct {
	resources map[string]*rdf.Resource
}

func (r *stubRepo) Get(_ context.Context, uri string) (*rdf.Resource, error) {
	res, ok := r.resources[uri]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeResourceNotAvailable, "resource %s not available", uri)
	}
	return res, nil
}

func (r *stubRepo) GetBinary(_ context.Context, uri string) ([]byte, string, error) {
	return nil, "", errors.Newf(errors.ErrCodeResourceNotAvailable, "resource %s not available", uri)
}

func (r *stubRepo) Contains(uri string) bool {
	_, ok := r.resources[uri]
	return ok
}

func (r *stubRepo) Path(string) string { return "" }

func itemResource(uri string) *rdf.Resource {
	g := rdf.NewGraph()
	g.AddIRI(uri, rdf.RDFType, rdf.NSUmdModel+"Item")
	g.Add(uri, rdf.NSDcterms+"title", rdf.Term{Value: "Stories", Lang: "en"})
	return &rdf.Resource{URI: uri, Graph: g}
}

func testServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	registry := indexers.NewRegistry()
	registry.Register("stub", func(_ context.Context, ic *indexers.Context) (indexers.Doc, error) {
		title, _ := ic.Resource.Graph.Object(ic.Resource.URI, rdf.NSDcterms+"title")
		return indexers.Doc{"item__title__txt_en": title.Value}, nil
	})
	registry.Register("broken", func(context.Context, *indexers.Context) (indexers.Doc, error) {
		return nil, fmt.Errorf("no luck")
	})

	repo := &stubRepo{resources: map[string]*rdf.Resource{
		"http://fcrepo.example/obj1": itemResource("http://fcrepo.example/obj1"),
	}}

	return New(cfg, repo, registry, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	return &config.Config{
		FcrepoEndpoint: "http://fcrepo.example",
		ListenAddress:  ":5000",
		Indexers: map[string][]string{
			"Item": {"stub"},
		},
	}
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestRootPage(t *testing.T) {
	w := get(t, testServer(t, testConfig()), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Solrizer")
	assert.Contains(t, w.Body.String(), `action="/doc"`)
}

func TestHealth(t *testing.T) {
	w := get(t, testServer(t, testConfig()), "/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["uptime"])
}

func TestDoc(t *testing.T) {
	w := get(t, testServer(t, testConfig()), "/doc?uri=http://fcrepo.example/obj1")

	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "http://fcrepo.example/obj1", doc["id"])
	assert.Equal(t, "Stories", doc["item__title__txt_en"])
}

func TestDocAddCommand(t *testing.T) {
	w := get(t, testServer(t, testConfig()), "/doc?uri=http://fcrepo.example/obj1&command=add")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Stories", body["add"]["doc"]["item__title__txt_en"])
}

func TestDocUpdateCommand(t *testing.T) {
	existing := map[string]any{
		"responseHeader": map[string]any{"status": 0},
		"response": map[string]any{
			"numFound": 1,
			"docs": []any{map[string]any{
				"id":                  "http://fcrepo.example/obj1",
				"item__title__txt_en": "Old Title",
				"_version_":           1234,
			}},
		},
	}
	solrSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(existing); err != nil {
			t.Error(err)
		}
	}))
	defer solrSrv.Close()

	cfg := testConfig()
	cfg.SolrQueryEndpoint = solrSrv.URL + "/solr/core/query"

	w := get(t, testServer(t, cfg), "/doc?uri=http://fcrepo.example/obj1&command=update")

	require.Equal(t, http.StatusOK, w.Code)
	var updates []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updates))
	require.Len(t, updates, 1)
	assert.Equal(t, "http://fcrepo.example/obj1", updates[0]["id"])
}

func TestDocUpdateWithoutQueryEndpoint(t *testing.T) {
	w := get(t, testServer(t, testConfig()), "/doc?uri=http://fcrepo.example/obj1&command=update")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
}

func TestDocMissingURI(t *testing.T) {
	w := get(t, testServer(t, testConfig()), "/doc")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	var problem map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, "No resource requested", problem["title"])
}

func TestDocUnknownCommand(t *testing.T) {
	w := get(t, testServer(t, testConfig()), "/doc?uri=http://fcrepo.example/obj1&command=delete")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown command")
}

func TestDocResourceNotFound(t *testing.T) {
	w := get(t, testServer(t, testConfig()), "/doc?uri=http://fcrepo.example/missing")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	var problem map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, "Resource is not available", problem["title"])
}

func TestDocUnknownModel(t *testing.T) {
	srv := testServer(t, testConfig())
	g := rdf.NewGraph()
	g.AddLiteral("http://fcrepo.example/untyped", rdf.NSDcterms+"title", "x")
	srv.repo.(*stubRepo).resources["http://fcrepo.example/untyped"] = &rdf.Resource{
		URI:   "http://fcrepo.example/untyped",
		Graph: g,
	}

	w := get(t, srv, "/doc?uri=http://fcrepo.example/untyped")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocIndexerFailureIsTolerated(t *testing.T) {
	cfg := testConfig()
	cfg.Indexers["Item"] = []string{"broken", "stub"}

	w := get(t, testServer(t, cfg), "/doc?uri=http://fcrepo.example/obj1")

	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Stories", doc["item__title__txt_en"])
}

func TestDocNoIndexersConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Indexers = map[string][]string{"Item": {}}

	w := get(t, testServer(t, cfg), "/doc?uri=http://fcrepo.example/obj1")

	body, _ := io.ReadAll(w.Body)
	assert.Equal(t, http.StatusInternalServerError, w.Code, string(body))
}
