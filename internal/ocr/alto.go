// Package ocr parses ALTO XML documents and exposes their word-level
// content with image-space bounding boxes.
package ocr

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
)

// XYWH is a bounding box in image pixels.
type XYWH struct {
	X int
	Y int
	W int
	H int
}

func (b XYWH) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.X, b.Y, b.W, b.H)
}

// Scale converts ALTO measurement units to image pixels.
type Scale struct {
	X float64
	Y float64
}

// ScaleFor returns the unit-to-pixel scale for the given ALTO
// MeasurementUnit and image resolution in DPI.
func ScaleFor(unit string, xres, yres int) (Scale, error) {
	switch unit {
	case "inch1200":
		return Scale{X: float64(xres) / 1200.0, Y: float64(yres) / 1200.0}, nil
	case "mm10":
		return Scale{X: float64(xres) / 254.0, Y: float64(yres) / 254.0}, nil
	case "pixel":
		return Scale{X: 1, Y: 1}, nil
	default:
		return Scale{}, fmt.Errorf("unknown MeasurementUnit %q", unit)
	}
}

// String is one captured word with its scaled bounding box.
type String struct {
	Content string
	XYWH    XYWH
}

type altoString struct {
	Content string `xml:"CONTENT,attr"`
	HPos    int    `xml:"HPOS,attr"`
	VPos    int    `xml:"VPOS,attr"`
	Width   int    `xml:"WIDTH,attr"`
	Height  int    `xml:"HEIGHT,attr"`
}

type altoTextLine struct {
	Strings []altoString `xml:"String"`
}

type altoTextBlock struct {
	ID    string         `xml:"ID,attr"`
	Lines []altoTextLine `xml:"TextLine"`
}

type altoPage struct {
	PrintSpace struct {
		TextBlocks []altoTextBlock `xml:"TextBlock"`
	} `xml:"PrintSpace"`
}

type altoDoc struct {
	XMLName     xml.Name `xml:"alto"`
	Description struct {
		MeasurementUnit string `xml:"MeasurementUnit"`
	} `xml:"Description"`
	Layout struct {
		Pages []altoPage `xml:"Page"`
	} `xml:"Layout"`
}

// Resource is a parsed ALTO document.
type Resource struct {
	scale Scale
	doc   altoDoc
}

// Parse reads an ALTO document, using the image resolution in DPI to
// scale coordinates into pixels.
func Parse(r io.Reader, xres, yres int) (*Resource, error) {
	var doc altoDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing ALTO document: %w", err)
	}
	if doc.XMLName.Local != "alto" {
		return nil, fmt.Errorf("not an ALTO document: root element is %q", doc.XMLName.Local)
	}
	scale, err := ScaleFor(doc.Description.MeasurementUnit, xres, yres)
	if err != nil {
		return nil, err
	}
	return &Resource{scale: scale, doc: doc}, nil
}

// IsALTO reports whether the XML local root name marks an ALTO document.
func IsALTO(data []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local == "alto"
		}
	}
}

// Strings returns every captured word in document order with its
// bounding box converted to pixels.
func (a *Resource) Strings() []String {
	var out []String
	for _, page := range a.doc.Layout.Pages {
		for _, block := range page.PrintSpace.TextBlocks {
			for _, line := range block.Lines {
				for _, s := range line.Strings {
					out = append(out, String{
						Content: s.Content,
						XYWH: XYWH{
							X: scaleRound(s.HPos, a.scale.X),
							Y: scaleRound(s.VPos, a.scale.Y),
							W: scaleRound(s.Width, a.scale.X),
							H: scaleRound(s.Height, a.scale.Y),
						},
					})
				}
			}
		}
	}
	return out
}

func scaleRound(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}
