// Package templates holds the HTML components of the dashboard.
package templates

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/types"
)

// Cards lists the panels in page order with their text for window w.
func Cards(w model.TimeWindow) []PanelCard {
	rng := w.RangeLabel()
	return []PanelCard{
		{
			Panel:       types.PanelHull,
			Heading:     "Players position",
			Description: "Position of every player detected at " + w.InstantLabel(),
			Note:        "This plot can be updated using the second filter",
		},
		{
			Panel:       types.PanelHeatmap,
			Heading:     "Most played zones",
			Description: "General overview of the most played zone during " + rng + " period.",
		},
		{
			Panel:       types.PanelPositional,
			Heading:     "Juego de posición",
			Description: "Tactical analysis of different zones covered during the " + rng + " period.",
		},
		{
			Panel:       types.PanelThirds,
			Heading:     "Most played zones",
			Description: "Covered zones during the " + rng + " period.",
			Note:        "The pitch is divided into 3 different zones: attacking, middle, defensive",
		},
		{
			Panel:       types.PanelTimeline,
			Heading:     "Played zone through time",
			Description: "Minute-by-minute analysis of the most played zones (defensive, middle, and attacking).",
		},
	}
}

// PanelURL is the chart source for panel p under window w.
func PanelURL(p types.Panel, w model.TimeWindow) string {
	q := url.Values{}
	q.Set("start", strconv.Itoa(w.StartMinute))
	q.Set("end", strconv.Itoa(w.EndMinute))
	q.Set("second", strconv.Itoa(w.Second))
	return "/panels/" + string(p) + ".svg?" + q.Encode()
}

// SecondLabel is the zero-padded second shown next to the second slider.
func SecondLabel(w model.TimeWindow) string {
	return fmt.Sprintf("%02d", w.Second)
}
