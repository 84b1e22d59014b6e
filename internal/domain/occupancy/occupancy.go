// Package occupancy converts raw position samples into per-minute zone
// occupancy percentages.
package occupancy

import (
	"math"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/model"
)

const fullPercent = 100

// Rounding selects how per-zone shares are turned into integer percentages.
type Rounding string

const (
	// RoundNaive rounds each cell on its own (half to even). A minute may
	// then sum to 99 or 101.
	RoundNaive Rounding = "naive"
	// RoundLargestRemainder floors every cell and hands the missing points to
	// the largest remainders, so each minute sums to exactly 100.
	RoundLargestRemainder Rounding = "largest_remainder"
)

// ParseRounding maps a config value to a Rounding.
func ParseRounding(s string) (Rounding, error) {
	switch Rounding(s) {
	case RoundNaive, "":
		return RoundNaive, nil
	case RoundLargestRemainder:
		return RoundLargestRemainder, nil
	}
	return "", errors.Newf("unknown rounding %q", s)
}

// Option applies a configuration option to the aggregator.
type Option func(*aggregator)

// WithRounding sets the rounding policy.
func WithRounding(r Rounding) Option {
	return func(a *aggregator) {
		if r != "" {
			a.rounding = r
		}
	}
}

type aggregator struct {
	rounding Rounding
}

// Row is one (zone, minute) cell of the occupancy table.
type Row struct {
	Zone       model.Zone `json:"zone_played"`
	Minute     int        `json:"minute"`
	Percentage int        `json:"percentage"`
	Count      int        `json:"count"`
}

// Table is the dense zone × minute occupancy table. It is immutable after
// Aggregate returns.
type Table struct {
	maxMinute int
	rounding  Rounding
	// cells[minute][zone index]
	cells  [][3]Row
	totals []int
}

type key struct {
	zone   model.Zone
	minute int
}

// Aggregate groups samples by (zone, minute) and by minute and derives the
// share of each zone per minute.
func Aggregate(samples []model.PositionSample, opts ...Option) (*Table, error) {
	a := &aggregator{rounding: RoundNaive}
	for _, opt := range opts {
		opt(a)
	}

	byZone := make(map[key]int)
	byMinute := make(map[int]int)
	maxMinute := -1
	for i, s := range samples {
		if !s.Zone.Valid() {
			return nil, model.NewInvalidInput("zone_played", 0, "sample "+strconv.Itoa(i)+" has unknown zone "+string(s.Zone))
		}
		if s.Minute < 0 || s.Minute > model.MaxMinute {
			return nil, model.NewInvalidInput("minute", 0, "sample "+strconv.Itoa(i)+" has minute "+strconv.Itoa(s.Minute)+" outside [0, "+strconv.Itoa(model.MaxMinute)+"]")
		}
		byZone[key{zone: s.Zone, minute: s.Minute}]++
		byMinute[s.Minute]++
		if s.Minute > maxMinute {
			maxMinute = s.Minute
		}
	}

	t := &Table{maxMinute: maxMinute, rounding: a.rounding}
	if maxMinute < 0 {
		return t, nil
	}
	t.cells = make([][3]Row, maxMinute+1)
	t.totals = make([]int, maxMinute+1)
	for m := 0; m <= maxMinute; m++ {
		total := byMinute[m]
		t.totals[m] = total
		var counts [3]int
		for zi, z := range model.Zones {
			counts[zi] = byZone[key{zone: z, minute: m}]
		}
		pcts := a.percentages(counts, total)
		for zi, z := range model.Zones {
			t.cells[m][zi] = Row{Zone: z, Minute: m, Percentage: pcts[zi], Count: counts[zi]}
		}
	}
	return t, nil
}

func (a *aggregator) percentages(counts [3]int, total int) [3]int {
	var out [3]int
	if total == 0 {
		return out
	}
	switch a.rounding {
	case RoundLargestRemainder:
		return largestRemainder(counts, total)
	default:
		for i, c := range counts {
			share := float64(c) / float64(total)
			out[i] = clampPercent(int(math.RoundToEven(share * fullPercent)))
		}
	}
	return out
}

func largestRemainder(counts [3]int, total int) [3]int {
	var out [3]int
	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, 0, len(counts))
	assigned := 0
	for i, c := range counts {
		exact := float64(c) * fullPercent / float64(total)
		floor := math.Floor(exact)
		out[i] = int(floor)
		assigned += out[i]
		rems = append(rems, rem{idx: i, frac: exact - floor})
	}
	// Ties go to the zone listed first.
	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; assigned < fullPercent && i < len(rems); i++ {
		if counts[rems[i].idx] == 0 {
			continue
		}
		out[rems[i].idx]++
		assigned++
	}
	return out
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > fullPercent {
		return fullPercent
	}
	return p
}

// MaxMinute returns the last minute covered by the table, or -1 when empty.
func (t *Table) MaxMinute() int { return t.maxMinute }

// Rounding returns the policy the table was built with.
func (t *Table) Rounding() Rounding { return t.rounding }

// Samples returns the number of samples recorded in minute m.
func (t *Table) Samples(m int) int {
	if m < 0 || m > t.maxMinute {
		return 0
	}
	return t.totals[m]
}

// Percentage returns the share of zone z in minute m. Missing pairs are 0.
func (t *Table) Percentage(z model.Zone, m int) int {
	zi := z.Index()
	if zi < 0 || m < 0 || m > t.maxMinute {
		return 0
	}
	return t.cells[m][zi].Percentage
}

// Rows returns the dense table: every zone for every minute in
// [0, MaxMinute], in minute then zone order.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.cells)*len(model.Zones))
	for _, minute := range t.cells {
		out = append(out, minute[:]...)
	}
	return out
}

// Sparse returns one row per (zone, minute) pair that has samples. Absent
// pairs are implicitly 0%.
func (t *Table) Sparse() []Row {
	out := make([]Row, 0, len(t.cells)*len(model.Zones))
	for _, minute := range t.cells {
		for _, r := range minute {
			if r.Count > 0 {
				out = append(out, r)
			}
		}
	}
	return out
}

// Series returns the per-minute percentages of zone z from minute 0 to
// MaxMinute, ready for stacked bar rendering.
func (t *Table) Series(z model.Zone) []int {
	out := make([]int, len(t.cells))
	zi := z.Index()
	if zi < 0 {
		return out
	}
	for m := range t.cells {
		out[m] = t.cells[m][zi].Percentage
	}
	return out
}

// MinuteSum returns the sum of percentages for minute m.
func (t *Table) MinuteSum(m int) int {
	if m < 0 || m > t.maxMinute {
		return 0
	}
	sum := 0
	for _, r := range t.cells[m] {
		sum += r.Percentage
	}
	return sum
}
