package indexers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solrizer/internal/rdf"
)

const altoSample = `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v2#">
  <Description>
    <MeasurementUnit>inch1200</MeasurementUnit>
  </Description>
  <Layout>
    <Page>
      <PrintSpace>
        <TextBlock>
          <TextLine>
            <String CONTENT="Hello" HPOS="1200" VPOS="2400" WIDTH="600" HEIGHT="300"/>
            <String CONTENT="world" HPOS="1800" VPOS="2400" WIDTH="600" HEIGHT="300"/>
          </TextLine>
        </TextBlock>
      </PrintSpace>
    </Page>
  </Layout>
</alto>`

func textPageDoc(pageURI, fileURI, mimeType string, rdfTypes ...string) Doc {
	file := Doc{"id": fileURI, "file__mime_type__str": mimeType}
	if len(rdfTypes) > 0 {
		types := make([]any, len(rdfTypes))
		for i, rt := range rdfTypes {
			types[i] = rt
		}
		file["file__rdf_type__uris"] = types
	}
	return Doc{"id": pageURI, "page__has_file": []Doc{file}}
}

func TestExtractedTextFieldsPlainText(t *testing.T) {
	repo := newFakeRepo(testEndpoint)
	fileURI := testEndpoint + "/p1/text"
	repo.addBinary(fileURI, "text/plain", []byte("plain page text"))

	res := &rdf.Resource{URI: testEndpoint + "/obj1", Path: "/obj1", Graph: rdf.NewGraph()}
	ic := newTestContext(t, repo, res, itemModel(t))
	ic.Doc = Doc{
		"item__has_member": []Doc{textPageDoc(testEndpoint+"/p1", fileURI, "text/plain")},
	}

	fields, err := ExtractedTextFields(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, "plain page text", fields["extracted_text__txt"])
	assert.NotContains(t, fields, "extracted_text__dps_txt")
}

func TestExtractedTextFieldsHTML(t *testing.T) {
	repo := newFakeRepo(testEndpoint)
	fileURI := testEndpoint + "/p1/html"
	repo.addBinary(fileURI, "text/html", []byte("<html><body><p>marked up</p></body></html>"))

	res := &rdf.Resource{URI: testEndpoint + "/obj1", Path: "/obj1", Graph: rdf.NewGraph()}
	ic := newTestContext(t, repo, res, itemModel(t))
	ic.Doc = Doc{
		"item__has_member": []Doc{textPageDoc(testEndpoint+"/p1", fileURI, "text/html")},
	}

	fields, err := ExtractedTextFields(context.Background(), ic)
	require.NoError(t, err)
	assert.Equal(t, "marked up", fields["extracted_text__txt"])
}

func TestExtractedTextFieldsALTO(t *testing.T) {
	repo := newFakeRepo(testEndpoint)
	fileURI := testEndpoint + "/p1/ocr"
	repo.addBinary(fileURI, "application/xml", []byte(altoSample))

	res := &rdf.Resource{URI: testEndpoint + "/obj1", Path: "/obj1", Graph: rdf.NewGraph()}
	ic := newTestContext(t, repo, res, itemModel(t))
	ic.Doc = Doc{
		"item__has_member": []Doc{
			textPageDoc(testEndpoint+"/p1", fileURI, "application/xml", rdf.TypeExtractedText),
		},
	}
	ic.Settings = map[string]any{ConfigImageResolution: 400}

	fields, err := ExtractedTextFields(context.Background(), ic)
	require.NoError(t, err)

	// 1200 units/inch at 400 DPI scales coordinates by 1/3
	text, ok := fields["extracted_text__dps_txt"].(string)
	require.True(t, ok)
	assert.Equal(t, "Hello|n=0&xywh=400,800,200,100 world|n=0&xywh=600,800,200,100", text)
}

func TestExtractedTextFieldsALTOWithoutResolution(t *testing.T) {
	repo := newFakeRepo(testEndpoint)
	fileURI := testEndpoint + "/p1/ocr"
	repo.addBinary(fileURI, "application/xml", []byte(altoSample))

	res := &rdf.Resource{URI: testEndpoint + "/obj1", Path: "/obj1", Graph: rdf.NewGraph()}
	ic := newTestContext(t, repo, res, itemModel(t))
	ic.Doc = Doc{
		"item__has_member": []Doc{
			textPageDoc(testEndpoint+"/p1", fileURI, "application/xml", rdf.TypeExtractedText),
		},
	}

	_, err := ExtractedTextFields(context.Background(), ic)
	assert.Error(t, err)
}

func TestExtractedTextFieldsNoText(t *testing.T) {
	repo := newFakeRepo(testEndpoint)
	res := &rdf.Resource{URI: testEndpoint + "/obj1", Path: "/obj1", Graph: rdf.NewGraph()}
	ic := newTestContext(t, repo, res, itemModel(t))

	fields, err := ExtractedTextFields(context.Background(), ic)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestStripHTML(t *testing.T) {
	got := stripHTML("<html><head><style>p{}</style></head><body><p>keep <b>this</b></p></body></html>")
	assert.Equal(t, "keep this", got)
}
