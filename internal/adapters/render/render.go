// Package render draws dashboard panels as SVG charts on a vertical
// StatsBomb pitch: own goal at the bottom, attacking upwards.
package render

import (
	"bytes"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/okian/futvis/internal/domain/model"
)

const (
	defaultScale = 4.0
	defaultPad   = 16
	defaultFont  = "Helvetica,Arial,sans-serif"
)

// Renderer turns computation results into charts. It holds no per-request
// state and is safe for concurrent use.
type Renderer struct {
	scale float64
	pad   int
	font  string
}

// NewRenderer builds a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{scale: defaultScale, pad: defaultPad, font: defaultFont}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PitchSize returns the pixel size of pitch panels.
func (r *Renderer) PitchSize() (int, int) {
	return r.sx(model.PitchWidth) + r.pad, r.sy(0) + r.pad
}

// sx maps a width coordinate to a screen column.
func (r *Renderer) sx(width float64) int {
	return r.pad + int(math.Round(width*r.scale))
}

// sy maps a length coordinate to a screen row; length grows upwards.
func (r *Renderer) sy(length float64) int {
	return r.pad + int(math.Round((model.PitchLength-length)*r.scale))
}

func (r *Renderer) px(units float64) int {
	return int(math.Round(units * r.scale))
}

// canvas starts an SVG document sized for a pitch panel.
func (r *Renderer) canvas(title, background string) (*svg.SVG, *bytes.Buffer, int, int) {
	var buf bytes.Buffer
	w, h := r.PitchSize()
	c := svg.New(&buf)
	c.Start(w, h)
	c.Title(title)
	c.Rect(0, 0, w, h, "fill:"+background)
	return c, &buf, w, h
}

func finish(c *svg.SVG, buf *bytes.Buffer, title string, w, h int) *Chart {
	c.End()
	return &Chart{Title: title, Width: w, Height: h, body: buf.Bytes()}
}

// cell fills the pitch rectangle [x0,x1]×[y0,y1] (length × width).
func (r *Renderer) cell(c *svg.SVG, x0, x1, y0, y1 float64, style string) {
	left, right := r.sx(y0), r.sx(y1)
	top, bottom := r.sy(x1), r.sy(x0)
	c.Rect(left, top, right-left, bottom-top, style)
}

// pitchMarkings draws the StatsBomb markings in the given line color.
func (r *Renderer) pitchMarkings(c *svg.SVG, line string) {
	const (
		boxDepth   = 18.0
		boxNear    = 18.0
		boxFar     = 62.0
		sixDepth   = 6.0
		sixNear    = 30.0
		sixFar     = 50.0
		spot       = 12.0
		circle     = 10.0
		goalNear   = 36.0
		goalFar    = 44.0
		goalDepth  = 2.4
		arcReach   = 8.0 // half chord of the penalty arc on the box line
		halfLength = model.PitchLength / 2
		halfWidth  = model.PitchWidth / 2
	)
	stroke := "fill:none;stroke:" + line + ";stroke-width:2"
	dot := "fill:" + line

	c.Gstyle(stroke)
	r.cell(c, 0, model.PitchLength, 0, model.PitchWidth, "")
	c.Line(r.sx(0), r.sy(halfLength), r.sx(model.PitchWidth), r.sy(halfLength))
	c.Circle(r.sx(halfWidth), r.sy(halfLength), r.px(circle))

	for _, end := range []struct {
		goal, box, six, spot, outward float64
		sweep                         bool
	}{
		{goal: 0, box: boxDepth, six: sixDepth, spot: spot, outward: -1, sweep: true},
		{goal: model.PitchLength, box: model.PitchLength - boxDepth, six: model.PitchLength - sixDepth, spot: model.PitchLength - spot, outward: 1},
	} {
		r.cell(c, math.Min(end.goal, end.box), math.Max(end.goal, end.box), boxNear, boxFar, "")
		r.cell(c, math.Min(end.goal, end.six), math.Max(end.goal, end.six), sixNear, sixFar, "")
		goalBack := end.goal + end.outward*goalDepth
		r.cell(c, math.Min(end.goal, goalBack), math.Max(end.goal, goalBack), goalNear, goalFar, "")
		c.Arc(r.sx(halfWidth-arcReach), r.sy(end.box), r.px(circle), r.px(circle), 0,
			false, end.sweep, r.sx(halfWidth+arcReach), r.sy(end.box))
		c.Circle(r.sx(halfWidth), r.sy(end.spot), 2, dot)
	}
	c.Circle(r.sx(halfWidth), r.sy(halfLength), 2, dot)
	c.Gend()
}
