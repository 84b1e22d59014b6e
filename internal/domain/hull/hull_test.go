package hull_test

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/hull"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) model.Point { return model.Point{X: x, Y: y} }

func TestCompute_Square(t *testing.T) {
	h := hull.Compute([]model.Point{pt(10, 10), pt(0, 10), pt(10, 0), pt(0, 0)})

	require.False(t, h.Degenerate)
	assert.Equal(t, []model.Point{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}, h.Vertices)

	poly, err := h.Polygon()
	require.NoError(t, err)
	assert.Len(t, poly, 4)
}

func TestCompute_InteriorAndCollinearPointsDropped(t *testing.T) {
	points := []model.Point{
		pt(0, 0), pt(4, 0), pt(4, 4), pt(0, 4),
		pt(2, 2), pt(1, 3), // interior
		pt(2, 0), pt(4, 2), // on an edge
		pt(4, 4), pt(0, 0), // duplicates
	}
	h := hull.Compute(points)

	require.False(t, h.Degenerate)
	assert.Equal(t, []model.Point{pt(0, 0), pt(4, 0), pt(4, 4), pt(0, 4)}, h.Vertices)
}

func TestCompute_Degenerate(t *testing.T) {
	cases := []struct {
		name   string
		points []model.Point
		want   []model.Point
	}{
		{name: "empty", points: nil, want: []model.Point{}},
		{name: "single", points: []model.Point{pt(3, 4)}, want: []model.Point{pt(3, 4)}},
		{name: "pair", points: []model.Point{pt(5, 5), pt(1, 1)}, want: []model.Point{pt(1, 1), pt(5, 5)}},
		{name: "repeated", points: []model.Point{pt(2, 2), pt(2, 2), pt(2, 2)}, want: []model.Point{pt(2, 2)}},
		{name: "collinear", points: []model.Point{pt(0, 0), pt(3, 3), pt(1, 1), pt(2, 2)}, want: []model.Point{pt(0, 0), pt(3, 3)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var h hull.Hull
			require.NotPanics(t, func() { h = hull.Compute(tc.points) })
			assert.True(t, h.Degenerate)
			assert.Equal(t, tc.want, h.Vertices)

			_, err := h.Polygon()
			assert.True(t, errors.Is(err, model.ErrDegenerateGeometry))
		})
	}
}

func TestCompute_CounterClockwise(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := make([]model.Point, 200)
	for i := range points {
		points[i] = pt(rng.Float64()*model.PitchLength, rng.Float64()*model.PitchWidth)
	}
	h := hull.Compute(points)
	require.False(t, h.Degenerate)

	var area float64
	n := len(h.Vertices)
	for i := 0; i < n; i++ {
		a, b := h.Vertices[i], h.Vertices[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	assert.Greater(t, area, 0.0)

	for _, v := range h.Vertices[1:] {
		first := h.Vertices[0]
		assert.True(t, first.X < v.X || (first.X == v.X && first.Y < v.Y))
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	points := []model.Point{pt(3, 0), pt(0, 0), pt(1, 2)}
	orig := append([]model.Point(nil), points...)
	hull.Compute(points)
	assert.Equal(t, orig, points)
}
