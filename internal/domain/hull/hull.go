// Package hull computes the convex hull of a set of pitch points.
package hull

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/model"
)

// Hull is the convex envelope of a point set. Vertices are counter-clockwise,
// starting at the lowest (X, then Y) point, with collinear boundary points
// removed.
type Hull struct {
	Vertices   []model.Point `json:"vertices"`
	Degenerate bool          `json:"degenerate"`
}

// Polygon returns the hull vertices, or ErrDegenerateGeometry when the input
// does not enclose an area.
func (h Hull) Polygon() ([]model.Point, error) {
	if h.Degenerate {
		return nil, errors.Wrapf(model.ErrDegenerateGeometry, "%d distinct vertices", len(h.Vertices))
	}
	return h.Vertices, nil
}

// Compute returns the convex hull of points using Andrew's monotone chain.
// Fewer than three distinct points, or points on a single line, yield a
// degenerate hull holding at most the two extreme points.
func Compute(points []model.Point) Hull {
	pts := unique(points)
	if len(pts) < 3 {
		return Hull{Vertices: pts, Degenerate: true}
	}

	lower := make([]model.Point, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]model.Point, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Endpoints of each chain are shared.
	vertices := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(vertices) < 3 {
		return Hull{Vertices: []model.Point{pts[0], pts[len(pts)-1]}, Degenerate: true}
	}
	return Hull{Vertices: vertices}
}

// cross is the z component of (a→b) × (a→c); positive for a left turn.
func cross(a, b, c model.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// unique returns the points sorted by (X, Y) without duplicates. The input is
// not modified.
func unique(points []model.Point) []model.Point {
	pts := make([]model.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	out := pts[:0]
	for _, p := range pts {
		if len(out) > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
