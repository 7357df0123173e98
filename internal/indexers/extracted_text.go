package indexers

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"solrizer/internal/errors"
	"solrizer/internal/ocr"
	"solrizer/internal/rdf"
)

// ConfigImageResolution is the indexer setting naming the scan
// resolution (DPI) used to convert ALTO coordinates to pixels.
const ConfigImageResolution = "image_resolution"

// pageText is the textual content of one page. tagged marks text that
// carries bounding box payloads.
type pageText struct {
	text   string
	tagged bool
}

// ExtractedTextFields collects the full text of the resource's pages
// into a single field. Pages are read in sequence order. HTML files
// are stripped to plain text, text files pass through, and ALTO OCR
// files contribute word-level text tagged with page number and xywh
// bounding box payloads. When any page is tagged the field is
// extracted_text__dps_txt, otherwise extracted_text__txt.
func ExtractedTextFields(ctx context.Context, ic *Context) (Doc, error) {
	pages := NewPageSequence(ic).Pages()
	if len(pages) == 0 {
		pages = ic.DocChildren(ic.Prefix() + "__has_member")
	}

	var texts []pageText
	for n, page := range pages {
		text, err := getPageText(ctx, ic, page, n)
		if err != nil {
			return nil, err
		}
		if text != nil {
			texts = append(texts, *text)
		}
	}
	if len(texts) == 0 {
		return Doc{}, nil
	}

	fieldName := "extracted_text__txt"
	for _, t := range texts {
		if t.tagged {
			fieldName = "extracted_text__dps_txt"
			break
		}
	}

	joined := make([]string, len(texts))
	for i, t := range texts {
		joined[i] = t.text
	}
	return Doc{fieldName: strings.Join(joined, " ")}, nil
}

// getPageText finds the page's text content, preferring HTML, then
// plain text, then ALTO OCR. Pages with none of those yield nil.
func getPageText(ctx context.Context, ic *Context, page Doc, pageIndex int) (*pageText, error) {
	files := childDocs(page["page__has_file"])

	if uri := findFileByMimeType(files, "text/html"); uri != "" {
		body, _, err := ic.Repo.GetBinary(ctx, uri)
		if err != nil {
			return nil, err
		}
		return &pageText{text: stripHTML(string(body))}, nil
	}

	if uri := findFileByMimeType(files, "text/plain"); uri != "" {
		body, _, err := ic.Repo.GetBinary(ctx, uri)
		if err != nil {
			return nil, err
		}
		return &pageText{text: string(body)}, nil
	}

	if uri := findFileByRDFType(files, rdf.TypeExtractedText); uri != "" {
		return getOCRText(ctx, ic, uri, pageIndex)
	}

	return nil, nil
}

// getOCRText parses an ALTO OCR file and tags each captured word with
// its page number and pixel bounding box.
func getOCRText(ctx context.Context, ic *Context, uri string, pageIndex int) (*pageText, error) {
	body, _, err := ic.Repo.GetBinary(ctx, uri)
	if err != nil {
		return nil, err
	}
	if !ocr.IsALTO(body) {
		return nil, errors.Newf(errors.ErrCodeIndexerFailed,
			"unsupported extracted text document at %s", uri)
	}

	resolution, ok := ic.IntSetting(ConfigImageResolution)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeIndexerFailed,
			"no image resolution configured, cannot convert OCR coordinates for %s", uri)
	}

	alto, err := ocr.Parse(strings.NewReader(string(body)), resolution, resolution)
	if err != nil {
		return nil, errors.Newf(errors.ErrCodeIndexerFailed,
			"cannot parse ALTO document at %s: %v", uri, err)
	}

	var words []string
	for _, s := range alto.Strings() {
		words = append(words, fmt.Sprintf("%s|n=%d&xywh=%s", s.Content, pageIndex, s.XYWH))
	}
	return &pageText{text: strings.Join(words, " "), tagged: true}, nil
}

func findFileByMimeType(files []Doc, mimeType string) string {
	for _, file := range files {
		if mt, ok := file["file__mime_type__str"].(string); ok && mt == mimeType {
			if uri, ok := file["id"].(string); ok {
				return uri
			}
		}
	}
	return ""
}

func findFileByRDFType(files []Doc, rdfType string) string {
	for _, file := range files {
		for _, t := range ValueList(file["file__rdf_type__uris"]) {
			if s, ok := t.(string); ok && s == rdfType {
				if uri, ok := file["id"].(string); ok {
					return uri
				}
			}
		}
	}
	return ""
}

// stripHTML returns the text content of an HTML document, with tags
// and script/style bodies removed.
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}
