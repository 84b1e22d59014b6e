package render

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/binning"
	"github.com/okian/futvis/internal/domain/hull"
	"github.com/okian/futvis/internal/domain/model"
)

// Panel colors.
const (
	heatmapBackground = "#22312b"
	heatmapLines      = "#efefef"
	pitchBackground   = "#ffffff"
	pitchLines        = "#c7d5cc"
	zoneEdges         = "gray"
	hullColor         = "red"
)

// Label sizes in pixels.
const (
	positionalLabelSize = 9
	thirdsLabelSize     = 17
)

// Heatmap draws a fine grid statistic with the hot colormap.
func (r *Renderer) Heatmap(title string, st *binning.Statistic) (*Chart, error) {
	if st == nil {
		return nil, ErrNoStatistic
	}
	if st.Config.Mode == binning.ModePositional {
		return nil, errors.Wrapf(ErrUnsupportedMode, "heatmap: %s", st.Config.Mode)
	}

	c, buf, w, h := r.canvas(title, heatmapBackground)
	norm := normalizer(bucketValues(st))
	for _, b := range st.Buckets {
		r.cell(c, b.X0, b.X1, b.Y0, b.Y1, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:0.5", Hex(Hot(norm(b.Value))), heatmapBackground))
	}
	r.pitchMarkings(c, heatmapLines)
	return finish(c, buf, title, w, h), nil
}

// Positional draws the tactical zone statistic with percentage labels.
func (r *Renderer) Positional(title string, st *binning.Statistic) (*Chart, error) {
	if st == nil {
		return nil, ErrNoStatistic
	}
	if st.Config.Mode != binning.ModePositional {
		return nil, errors.Wrapf(ErrUnsupportedMode, "positional: %s", st.Config.Mode)
	}
	return r.labelled(title, st, positionalLabelSize), nil
}

// Thirds draws the three length bands with percentage labels.
func (r *Renderer) Thirds(title string, st *binning.Statistic) (*Chart, error) {
	if st == nil {
		return nil, ErrNoStatistic
	}
	if st.Config.Mode != binning.ModeThirds {
		return nil, errors.Wrapf(ErrUnsupportedMode, "thirds: %s", st.Config.Mode)
	}
	return r.labelled(title, st, thirdsLabelSize), nil
}

func (r *Renderer) labelled(title string, st *binning.Statistic, fontSize int) *Chart {
	c, buf, w, h := r.canvas(title, pitchBackground)
	norm := normalizer(bucketValues(st))
	for _, b := range st.Buckets {
		r.cell(c, b.X0, b.X1, b.Y0, b.Y1, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", Hex(Coolwarm(norm(b.Value))), zoneEdges))
	}
	r.pitchMarkings(c, pitchLines)

	c.Gstyle(fmt.Sprintf("font-family:%s;font-size:%dpx;fill:black;text-anchor:middle;dominant-baseline:central", r.font, fontSize))
	for _, b := range st.Buckets {
		c.Text(r.sx((b.Y0+b.Y1)/2), r.sy((b.X0+b.X1)/2), b.Label())
	}
	c.Gend()
	return finish(c, buf, title, w, h)
}

// Hull draws the players' positions at one instant and, when they enclose an
// area, their convex hull.
func (r *Renderer) Hull(title string, h hull.Hull, points []model.Point) *Chart {
	c, buf, w, ht := r.canvas(title, pitchBackground)
	r.pitchMarkings(c, pitchLines)

	if poly, err := h.Polygon(); err == nil {
		xs := make([]int, len(poly))
		ys := make([]int, len(poly))
		for i, p := range poly {
			xs[i], ys[i] = r.sx(p.Y), r.sy(p.X)
		}
		c.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:0.3;stroke:%s;stroke-width:1.5", hullColor, hullColor))
	}

	c.Gstyle(fmt.Sprintf("fill:%s;stroke:black;stroke-width:1", hullColor))
	for _, p := range points {
		if !p.OnPitch() {
			continue
		}
		c.Circle(r.sx(p.Y), r.sy(p.X), 5)
	}
	c.Gend()
	return finish(c, buf, title, w, ht)
}

// Placeholder draws an empty pitch with a short message. Panels fall back to
// it for empty selections and failures.
func (r *Renderer) Placeholder(title, message string) *Chart {
	c, buf, w, h := r.canvas(title, pitchBackground)
	r.pitchMarkings(c, pitchLines)
	c.Text(w/2, h/2, message, fmt.Sprintf("font-family:%s;font-size:14px;fill:#555555;text-anchor:middle", r.font))
	return finish(c, buf, title, w, h)
}

func bucketValues(st *binning.Statistic) []float64 {
	out := make([]float64, len(st.Buckets))
	for i, b := range st.Buckets {
		out[i] = b.Value
	}
	return out
}
