package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/occupancy"
)

// Timeline geometry in pixels.
const (
	timelineWidth  = 800
	timelineHeight = 312
	plotLeft       = 44
	plotRight      = 120
	plotTop        = 12
	plotBottom     = 40
	barFill        = 0.6
	maxTicks       = 30
)

// Stack order from the bottom of each bar.
var zoneColors = []struct {
	zone  model.Zone
	color string
}{
	{model.ZoneDefensive, "red"},
	{model.ZoneMiddle, "#1f77b4"},
	{model.ZoneAttacking, "blue"},
}

// Timeline draws one stacked bar per minute with the share of each zone.
func (r *Renderer) Timeline(title string, t *occupancy.Table) (*Chart, error) {
	if t == nil || t.MaxMinute() < 0 {
		return nil, errors.Wrap(model.ErrEmptySelection, "timeline")
	}

	var buf bytes.Buffer
	c := svg.New(&buf)
	c.Start(timelineWidth, timelineHeight)
	c.Title(title)
	c.Rect(0, 0, timelineWidth, timelineHeight, "fill:"+pitchBackground)

	minutes := t.MaxMinute() + 1
	plotW := float64(timelineWidth - plotLeft - plotRight)
	plotH := float64(timelineHeight - plotTop - plotBottom)
	band := plotW / float64(minutes)
	barW := math.Max(1, band*barFill)
	baseline := timelineHeight - plotBottom
	yOf := func(pct int) int { return baseline - int(math.Round(float64(pct)/100*plotH)) }

	r.axes(c, minutes, band, yOf)

	series := make([][]int, len(zoneColors))
	for i, zc := range zoneColors {
		series[i] = t.Series(zc.zone)
	}

	labelStyle := fmt.Sprintf("font-family:%s;font-size:9px;fill:white;text-anchor:middle;dominant-baseline:central", r.font)
	for m := 0; m < minutes; m++ {
		x := plotLeft + int(math.Round(band*float64(m)+(band-barW)/2))
		bottom := 0
		for i, zc := range zoneColors {
			pct := series[i][m]
			if pct <= 0 {
				continue
			}
			top := bottom + pct
			y0, y1 := yOf(top), yOf(bottom)
			c.Rect(x, y0, int(math.Round(barW)), y1-y0, fmt.Sprintf("fill:%s;stroke:black;stroke-width:2", zc.color))
			c.Text(x+int(math.Round(barW/2)), (y0+y1)/2, strconv.Itoa(pct)+"%", labelStyle)
			bottom = top
		}
	}

	r.legend(c)
	c.End()
	return &Chart{Title: title, Width: timelineWidth, Height: timelineHeight, body: buf.Bytes()}, nil
}

func (r *Renderer) axes(c *svg.SVG, minutes int, band float64, yOf func(int) int) {
	baseline := timelineHeight - plotBottom
	right := timelineWidth - plotRight

	c.Gstyle(fmt.Sprintf("font-family:%s;font-size:10px;fill:#333333;stroke:none", r.font))
	c.Line(plotLeft, baseline, right, baseline, "stroke:black")
	c.Line(plotLeft, plotTop, plotLeft, baseline, "stroke:black")
	for pct := 0; pct <= 100; pct += 20 {
		y := yOf(pct)
		c.Line(plotLeft-4, y, plotLeft, y, "stroke:black")
		c.Text(plotLeft-6, y+3, strconv.Itoa(pct), "text-anchor:end")
	}

	step := 1
	if minutes > maxTicks {
		step = int(math.Ceil(float64(minutes) / maxTicks))
	}
	for m := 0; m < minutes; m += step {
		x := plotLeft + int(math.Round(band*(float64(m)+0.5)))
		c.Line(x, baseline, x, baseline+4, "stroke:black")
		c.Text(x, baseline+15, strconv.Itoa(m), "text-anchor:middle")
	}
	c.Text(plotLeft+(right-plotLeft)/2, timelineHeight-8, "minute", "text-anchor:middle")
	c.Gend()
}

func (r *Renderer) legend(c *svg.SVG) {
	x := timelineWidth - plotRight + 16
	y := plotTop + 4
	c.Gstyle(fmt.Sprintf("font-family:%s;font-size:11px;fill:#333333", r.font))
	c.Rect(x-6, y-4, plotRight-22, 16*len(zoneColors)+6, "fill:white;stroke:#cccccc")
	// Top of the stack first, as it reads on the bars.
	for i := len(zoneColors) - 1; i >= 0; i-- {
		zc := zoneColors[i]
		row := y + 16*(len(zoneColors)-1-i)
		c.Rect(x, row, 14, 10, "fill:"+zc.color+";stroke:black")
		c.Text(x+20, row+9, string(zc.zone))
	}
	c.Gend()
}
