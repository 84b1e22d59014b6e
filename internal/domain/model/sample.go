// Package model contains domain models passed between layers.
package model

// Pitch dimensions in StatsBomb units.
const (
	PitchLength = 120.0
	PitchWidth  = 80.0

	MillisPerMinute = 60_000
	MillisPerSecond = 1_000

	// MaxMinute bounds the minute of any sample: one day of footage.
	MaxMinute = 24 * 60
)

// Zone is the precomputed pitch-third classification of a sample.
type Zone string

// Known zones, ordered from own goal to the opponent goal.
const (
	ZoneDefensive Zone = "defensive"
	ZoneMiddle    Zone = "middle"
	ZoneAttacking Zone = "attacking"
)

// Zones lists every zone in pitch order.
var Zones = []Zone{ZoneDefensive, ZoneMiddle, ZoneAttacking}

// Valid reports whether z is one of the known zones.
func (z Zone) Valid() bool {
	switch z {
	case ZoneDefensive, ZoneMiddle, ZoneAttacking:
		return true
	}
	return false
}

// Index returns the position of z in Zones, or -1.
func (z Zone) Index() int {
	for i, known := range Zones {
		if z == known {
			return i
		}
	}
	return -1
}

// PositionSample is one detected player position at one video frame.
// X runs along the pitch width and Y along the pitch length, which is how the
// video pipeline writes its CSV.
type PositionSample struct {
	X           float64
	Y           float64
	Millisecond int64
	Minute      int
	Zone        Zone
}

// Point is a location in the pitch frame: X along the length, Y along the width.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PitchPoint returns the sample location in the pitch frame.
func (s PositionSample) PitchPoint() Point {
	return Point{X: s.Y, Y: s.X}
}

// OnPitch reports whether p lies inside the pitch rectangle, edges included.
func (p Point) OnPitch() bool {
	return p.X >= 0 && p.X <= PitchLength && p.Y >= 0 && p.Y <= PitchWidth
}

// MinuteOf derives the match minute from a video timestamp.
func MinuteOf(ms int64) int {
	if ms < 0 {
		return -1
	}
	return int(ms / MillisPerMinute)
}
