package render

import (
	"fmt"
	"image/color"
	"math"
)

// Colormap maps t in [0,1] to a color.
type Colormap func(t float64) color.RGBA

// Hot runs black, red, yellow, white.
func Hot(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: channel(t / 0.365),
		G: channel((t - 0.365) / 0.375),
		B: channel((t - 0.746) / 0.254),
		A: 0xff,
	}
}

type stop struct {
	at  float64
	rgb [3]float64
}

var coolwarmStops = []stop{
	{0.00, [3]float64{59, 76, 192}},
	{0.25, [3]float64{141, 176, 254}},
	{0.50, [3]float64{221, 221, 221}},
	{0.75, [3]float64{245, 156, 125}},
	{1.00, [3]float64{180, 4, 38}},
}

// Coolwarm is a diverging blue, grey, red map.
func Coolwarm(t float64) color.RGBA {
	t = clamp01(t)
	for i := 1; i < len(coolwarmStops); i++ {
		lo, hi := coolwarmStops[i-1], coolwarmStops[i]
		if t > hi.at {
			continue
		}
		f := (t - lo.at) / (hi.at - lo.at)
		return color.RGBA{
			R: uint8(math.Round(lo.rgb[0] + f*(hi.rgb[0]-lo.rgb[0]))),
			G: uint8(math.Round(lo.rgb[1] + f*(hi.rgb[1]-lo.rgb[1]))),
			B: uint8(math.Round(lo.rgb[2] + f*(hi.rgb[2]-lo.rgb[2]))),
			A: 0xff,
		}
	}
	last := coolwarmStops[len(coolwarmStops)-1].rgb
	return color.RGBA{R: uint8(last[0]), G: uint8(last[1]), B: uint8(last[2]), A: 0xff}
}

// Hex renders c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// normalizer maps values linearly onto [0,1] between the smallest and largest
// value; a flat input maps to 0.
func normalizer(values []float64) func(float64) float64 {
	if len(values) == 0 {
		return func(float64) float64 { return 0 }
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return func(float64) float64 { return 0 }
	}
	return func(v float64) float64 { return (v - lo) / (hi - lo) }
}
