package render

import (
	"bytes"
	"io"
)

// ContentType is the media type of every chart.
const ContentType = "image/svg+xml"

// Chart is a rendered panel.
type Chart struct {
	Title  string
	Width  int
	Height int

	body []byte
}

// Bytes returns the SVG document.
func (c *Chart) Bytes() []byte { return c.body }

// Len returns the document size in bytes.
func (c *Chart) Len() int { return len(c.body) }

// ContentType returns the media type of the chart.
func (c *Chart) ContentType() string { return ContentType }

// WriteTo implements io.WriterTo.
func (c *Chart) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(c.body).WriteTo(w)
}
