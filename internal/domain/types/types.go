// Package types contains the read shapes shared by the session service and
// the HTTP layer.
package types

import (
	"time"

	"github.com/okian/futvis/internal/domain/binning"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/occupancy"
)

// Panel names one of the dashboard charts.
type Panel string

// Dashboard panels in page order.
const (
	PanelHull       Panel = "hull"
	PanelHeatmap    Panel = "heatmap"
	PanelPositional Panel = "positional"
	PanelThirds     Panel = "thirds"
	PanelTimeline   Panel = "timeline"
)

// Panels lists every panel in page order.
var Panels = []Panel{PanelHull, PanelHeatmap, PanelPositional, PanelThirds, PanelTimeline}

// Valid reports whether p is a known panel.
func (p Panel) Valid() bool {
	for _, known := range Panels {
		if p == known {
			return true
		}
	}
	return false
}

// Instant reports whether the panel shows a single instant rather than a range.
func (p Panel) Instant() bool { return p == PanelHull }

// Meta describes the loaded dataset.
type Meta struct {
	DatasetID string    `json:"dataset_id"`
	Source    string    `json:"source"`
	Samples   int       `json:"samples"`
	MaxMinute int       `json:"max_minute"`
	Rounding  string    `json:"rounding"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Occupancy is the dense zone occupancy table.
type Occupancy struct {
	DatasetID string          `json:"dataset_id"`
	MaxMinute int             `json:"max_minute"`
	Rounding  string          `json:"rounding"`
	Rows      []occupancy.Row `json:"rows"`
}

// Bins is a binned view of the samples inside a window.
type Bins struct {
	Window    model.TimeWindow   `json:"window"`
	Label     string             `json:"label"`
	Statistic *binning.Statistic `json:"statistic"`
}

// Hull is the convex hull of the players detected at one instant.
type Hull struct {
	Instant    int64         `json:"instant_ms"`
	Label      string        `json:"label"`
	Points     []model.Point `json:"points"`
	Vertices   []model.Point `json:"vertices"`
	Degenerate bool          `json:"degenerate"`
}

// Health is the liveness payload.
type Health struct {
	Status    string `json:"status"`
	DatasetID string `json:"dataset_id,omitempty"`
}
