package binning

import (
	"fmt"

	"github.com/okian/futvis/internal/domain/model"
	"gonum.org/v1/gonum/floats"
)

// Positional grid lines of the StatsBomb pitch. Along the length: goal line,
// penalty area, the quarter lines either side of halfway, penalty area, goal
// line. Along the width: touchline, penalty area, six-yard box, six-yard box,
// penalty area, touchline.
var (
	positionalX = []float64{0, 18, 39, 60, 81, 102, model.PitchLength}
	positionalY = []float64{0, 18, 30, 50, 62, model.PitchWidth}
)

var lanes = []string{"left-wing", "left-half-space", "centre", "right-half-space", "right-wing"}

const (
	groupMiddle  = "middle"
	groupPenalty = "penalty"
	groupWide    = "wide"
)

type positionalCell struct {
	group string
	band  int
	lane  int
}

// classify maps a cell of the 6×5 positional line grid to its tactical zone.
// Columns between the penalty areas form the 4×5 middle block; each end splits
// into a penalty area with three lanes and two wide corners.
func classify(xi, yi int) positionalCell {
	last := len(positionalX) - 2
	if xi > 0 && xi < last {
		return positionalCell{group: groupMiddle, band: xi - 1, lane: yi}
	}
	band := 0
	if xi == last {
		band = 1
	}
	if yi == 0 || yi == len(positionalY)-2 {
		return positionalCell{group: groupWide, band: band, lane: yi}
	}
	return positionalCell{group: groupPenalty, band: band, lane: yi}
}

func (c positionalCell) id() string {
	return fmt.Sprintf("%s-%d-%s", c.group, c.band, lanes[c.lane])
}

type positionalZone struct {
	cell           positionalCell
	x0, x1, y0, y1 float64
}

// positionalZones lists the 30 zones in a stable order: middle block first,
// then penalty areas, then wide corners, each from own goal outward.
func positionalZones() []positionalZone {
	out := make([]positionalZone, 0, (len(positionalX)-1)*(len(positionalY)-1))
	for _, group := range []string{groupMiddle, groupPenalty, groupWide} {
		for xi := 0; xi < len(positionalX)-1; xi++ {
			for yi := 0; yi < len(positionalY)-1; yi++ {
				c := classify(xi, yi)
				if c.group != group {
					continue
				}
				out = append(out, positionalZone{
					cell: c,
					x0:   positionalX[xi],
					x1:   positionalX[xi+1],
					y0:   positionalY[yi],
					y1:   positionalY[yi+1],
				})
			}
		}
	}
	return out
}

func binPositional(samples []model.PositionSample, cfg Config) *Statistic {
	zones := positionalZones()
	index := make(map[string]int, len(zones))
	for i, z := range zones {
		index[z.cell.id()] = i
	}

	counts := make([]float64, len(zones))
	total := 0
	for _, s := range samples {
		p := s.PitchPoint()
		if !p.OnPitch() {
			continue
		}
		xi := locate(positionalX, p.X)
		yi := locate(positionalY, p.Y)
		if xi < 0 || yi < 0 {
			continue
		}
		counts[index[classify(xi, yi).id()]]++
		total++
	}

	values := make([]float64, len(counts))
	copy(values, counts)
	if total > 0 {
		floats.Scale(1/float64(total), values)
	}

	st := &Statistic{Config: cfg, Total: total, Buckets: make([]Bucket, 0, len(zones))}
	for i, z := range zones {
		st.Buckets = append(st.Buckets, Bucket{
			ID:    z.cell.id(),
			Group: z.cell.group,
			Row:   z.cell.band,
			Col:   z.cell.lane,
			X0:    z.x0,
			X1:    z.x1,
			Y0:    z.y0,
			Y1:    z.y1,
			Count: int(counts[i]),
			Value: values[i],
		})
	}
	return st
}
