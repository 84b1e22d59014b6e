package synth

import "time"

// Generation defaults.
const (
	DefaultMinutes   = 10
	DefaultPlayers   = 22
	DefaultFrameStep = time.Second
	DefaultDropout   = 0.05
	DefaultTimeout   = 10 * time.Second
)

// Walk tuning, in pitch units.
const (
	stepStdDev     = 1.5
	homePull       = 0.08
	minuteDriftMax = 6.0
)

// Occupancy check tolerance, in percentage points.
const (
	percentTarget    = 100
	percentTolerance = 1
)

// File permission constants.
const (
	directoryPermission = 0750
	logFilePermission   = 0600
)
