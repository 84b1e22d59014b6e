// Package binning maps pitch coordinates into discrete buckets and computes
// normalized occupancy per bucket.
package binning

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Mode names a partition of the pitch.
type Mode string

// Supported partitions.
const (
	ModePositional Mode = "positional-full"
	ModeFixedGrid  Mode = "fixed-grid"
	ModeThirds     Mode = "vertical-thirds"
)

// ParseMode maps a request path segment to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePositional, ModeFixedGrid, ModeThirds:
		return Mode(s), nil
	}
	return "", errors.Wrapf(ErrUnknownMode, "%q", s)
}

// Config selects a partition and optional smoothing.
type Config struct {
	Mode Mode `json:"mode"`
	// Rows run along the pitch length, Cols along the width. Only used by
	// ModeFixedGrid.
	Rows int `json:"rows"`
	Cols int `json:"cols"`
	// Sigma > 0 enables Gaussian smoothing of the normalized grid.
	Sigma float64 `json:"sigma,omitempty"`
}

// Positional is the named tactical zone grid.
func Positional() Config { return Config{Mode: ModePositional} }

// FixedGrid is a uniform rows × cols grid.
func FixedGrid(rows, cols int) Config { return Config{Mode: ModeFixedGrid, Rows: rows, Cols: cols} }

// Thirds splits the pitch into defensive, middle and attacking bands.
func Thirds() Config { return Config{Mode: ModeThirds, Rows: len(model.Zones), Cols: 1} }

// Smoothed returns a copy of c with Gaussian smoothing enabled.
func (c Config) Smoothed(sigma float64) Config {
	c.Sigma = sigma
	return c
}

// Key identifies the configuration in cache keys.
func (c Config) Key() string {
	return string(c.Mode) + "/" + strconv.Itoa(c.Rows) + "x" + strconv.Itoa(c.Cols) + "/" + strconv.FormatFloat(c.Sigma, 'g', -1, 64)
}

func (c Config) validate() error {
	switch c.Mode {
	case ModePositional, ModeThirds:
		return nil
	case ModeFixedGrid:
		if c.Rows <= 0 || c.Cols <= 0 {
			return errors.Wrapf(ErrInvalidGrid, "%dx%d", c.Rows, c.Cols)
		}
		return nil
	}
	return errors.Wrapf(ErrUnknownMode, "%q", c.Mode)
}

// Bucket is one spatial cell and its statistic. Bounds are in the pitch
// frame: X along the length, Y along the width.
type Bucket struct {
	ID    string  `json:"id"`
	Group string  `json:"group,omitempty"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X0    float64 `json:"x0"`
	X1    float64 `json:"x1"`
	Y0    float64 `json:"y0"`
	Y1    float64 `json:"y1"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// Label renders the bucket value as a whole percentage.
func (b Bucket) Label() string { return FormatPercent(b.Value) }

// Statistic is the binned view of a sample subset. Every bucket of the
// partition is present, zero-valued ones included.
type Statistic struct {
	Config  Config   `json:"config"`
	Buckets []Bucket `json:"buckets"`
	// Total is the number of on-pitch samples that were binned.
	Total int `json:"total"`

	grid *mat.Dense
}

// Empty reports whether no sample landed on the pitch.
func (s *Statistic) Empty() bool { return s.Total == 0 }

// Sum returns the sum of bucket values: 1 for any non-empty subset.
func (s *Statistic) Sum() float64 {
	vals := make([]float64, len(s.Buckets))
	for i, b := range s.Buckets {
		vals[i] = b.Value
	}
	return floats.Sum(vals)
}

// Values maps bucket ids to values.
func (s *Statistic) Values() map[string]float64 {
	out := make(map[string]float64, len(s.Buckets))
	for _, b := range s.Buckets {
		out[b.ID] = b.Value
	}
	return out
}

// Grid returns the value grid (rows along the length) for grid modes and nil
// for the positional partition.
func (s *Statistic) Grid() mat.Matrix {
	if s.grid == nil {
		return nil
	}
	return s.grid
}

// MaxValue returns the largest bucket value.
func (s *Statistic) MaxValue() float64 {
	m := 0.0
	for _, b := range s.Buckets {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}

// Bin partitions the pitch according to cfg and returns normalized counts.
// Samples outside the pitch are ignored.
func Bin(samples []model.PositionSample, cfg Config) (*Statistic, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case ModePositional:
		return binPositional(samples, cfg), nil
	case ModeThirds:
		cfg.Rows, cfg.Cols = len(model.Zones), 1
		return binGrid(samples, cfg, thirdsID), nil
	default:
		return binGrid(samples, cfg, gridID), nil
	}
}

func gridID(row, col int) string { return fmt.Sprintf("r%dc%d", row, col) }

func thirdsID(row, _ int) string { return string(model.Zones[row]) }

func binGrid(samples []model.PositionSample, cfg Config, id func(row, col int) string) *Statistic {
	xEdges := linspace(0, model.PitchLength, cfg.Rows)
	yEdges := linspace(0, model.PitchWidth, cfg.Cols)
	counts := make([]float64, cfg.Rows*cfg.Cols)
	total := 0
	for _, s := range samples {
		p := s.PitchPoint()
		if !p.OnPitch() {
			continue
		}
		r := locate(xEdges, p.X)
		c := locate(yEdges, p.Y)
		if r < 0 || c < 0 {
			continue
		}
		counts[r*cfg.Cols+c]++
		total++
	}

	values := make([]float64, len(counts))
	copy(values, counts)
	if total > 0 {
		floats.Scale(1/float64(total), values)
	}
	grid := mat.NewDense(cfg.Rows, cfg.Cols, values)
	if cfg.Sigma > 0 && total > 0 {
		grid = Smooth(grid, cfg.Sigma)
	}

	st := &Statistic{Config: cfg, Total: total, grid: grid, Buckets: make([]Bucket, 0, len(counts))}
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			st.Buckets = append(st.Buckets, Bucket{
				ID:    id(r, c),
				Row:   r,
				Col:   c,
				X0:    xEdges[r],
				X1:    xEdges[r+1],
				Y0:    yEdges[c],
				Y1:    yEdges[c+1],
				Count: int(counts[r*cfg.Cols+c]),
				Value: grid.At(r, c),
			})
		}
	}
	return st
}

// linspace returns n+1 evenly spaced edges over [lo, hi].
func linspace(lo, hi float64, n int) []float64 {
	edges := make([]float64, n+1)
	floats.Span(edges, lo, hi)
	return edges
}

// locate returns the bin of v in edges. Bins are left-closed; the last bin
// also holds the upper edge. -1 means out of range.
func locate(edges []float64, v float64) int {
	n := len(edges) - 1
	if n < 1 || v < edges[0] || v > edges[n] {
		return -1
	}
	if v == edges[n] {
		return n - 1
	}
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if v < edges[mid+1] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// FormatPercent renders a share in [0,1] as a rounded whole percentage.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
