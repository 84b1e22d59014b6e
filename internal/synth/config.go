package synth

import "time"

// Config holds configuration for a generate-and-verify run.
type Config struct {
	BaseURL    string        // Base URL of a running dashboard; empty skips verification
	OutputFile string        // CSV file to write
	LogFile    string        // Log file for run output
	Minutes    int           // Match minutes to generate
	Players    int           // Players tracked per frame
	FrameStep  time.Duration // Time between frames
	Dropout    float64       // Probability a player is missed in a frame
	Seed       uint64        // Seed for the position walk; zero picks one from the run id
	Timeout    time.Duration // HTTP request timeout
	Verbose    bool          // Enable verbose logging
}

// Stats holds run statistics.
type Stats struct {
	RunID          string
	RowsWritten    int
	MinutesChecked int
	PanelsChecked  int
	PanelsFailed   int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
