package indexers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solrizer/internal/errors"
	"solrizer/internal/rdf"
)

func testResource(uri string) *rdf.Resource {
	return &rdf.Resource{URI: uri, Path: "/obj1", Graph: rdf.NewGraph()}
}

func staticIndexer(fields Doc) Indexer {
	return func(context.Context, *Context) (Doc, error) {
		return fields, nil
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	r.Register("one", staticIndexer(Doc{"a__str": "1"}))
	r.Register("two", staticIndexer(Doc{"b__str": "2"}))

	resolved, err := r.Resolve([]string{"two", "one"})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "two", resolved[0].Name)
	assert.Equal(t, "one", resolved[1].Name)

	_, err = r.Resolve([]string{"one", "nope"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownIndexer, errors.GetCode(err))

	assert.Equal(t, []string{"one", "two"}, r.Names())
}

func TestPipelineRun(t *testing.T) {
	r := NewRegistry()
	r.Register("first", staticIndexer(Doc{"title__txt": "first title", "tag__txts": []any{"a"}}))
	r.Register("second", staticIndexer(Doc{"title__txt": "second title", "tag__txts": []any{"b"}}))

	p := &Pipeline{Registry: r}
	ic := &Context{Resource: testResource("http://repo.example/obj1"), Doc: make(Doc)}

	result, err := p.Run(context.Background(), ic, []string{"first", "second"})
	require.NoError(t, err)

	assert.Equal(t, "first title", result.Doc["title__txt"])
	assert.Equal(t, []any{"a", "b"}, result.Doc["tag__txts"])
	require.Len(t, result.Collisions, 1)
	assert.Equal(t, "second", result.Collisions[0].Indexer)
	assert.Equal(t, "title__txt", result.Collisions[0].Field)
	assert.Empty(t, result.Failures)
}

func TestPipelineRunEmptyList(t *testing.T) {
	p := &Pipeline{Registry: NewRegistry()}
	ic := &Context{Resource: testResource("http://repo.example/obj1")}

	_, err := p.Run(context.Background(), ic, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoIndexersConfigured, errors.GetCode(err))
}

func TestPipelineRunUnknownIndexer(t *testing.T) {
	p := &Pipeline{Registry: NewRegistry()}
	ic := &Context{Resource: testResource("http://repo.example/obj1")}

	_, err := p.Run(context.Background(), ic, []string{"missing"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownIndexer, errors.GetCode(err))
}

func TestPipelineRunIsolatesFailures(t *testing.T) {
	r := NewRegistry()
	r.Register("bad", func(context.Context, *Context) (Doc, error) {
		return nil, errors.Newf(errors.ErrCodeIndexerFailed, "broken")
	})
	r.Register("panics", func(context.Context, *Context) (Doc, error) {
		panic("boom")
	})
	r.Register("good", staticIndexer(Doc{"survived__str": "yes"}))

	p := &Pipeline{Registry: r}
	ic := &Context{Resource: testResource("http://repo.example/obj1"), Doc: make(Doc)}

	result, err := p.Run(context.Background(), ic, []string{"bad", "panics", "good"})
	require.NoError(t, err)

	assert.Equal(t, "yes", result.Doc["survived__str"])
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "bad", result.Failures[0].Indexer)
	assert.Equal(t, "panics", result.Failures[1].Indexer)
	assert.Equal(t, errors.ErrCodeIndexerFailed, errors.GetCode(result.Failures[1].Err))
}

func TestPipelineRunPassesSettings(t *testing.T) {
	r := NewRegistry()
	var got string
	r.Register("configured", func(_ context.Context, ic *Context) (Doc, error) {
		got, _ = ic.StringSetting("key")
		return Doc{}, nil
	})

	p := &Pipeline{
		Registry: r,
		Settings: map[string]map[string]any{
			"configured": {"key": "value"},
		},
	}
	ic := &Context{Resource: testResource("http://repo.example/obj1"), Doc: make(Doc)}

	_, err := p.Run(context.Background(), ic, []string{"configured"})
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}
