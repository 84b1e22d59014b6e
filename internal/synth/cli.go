package synth

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/pkg/logger"
)

// SetupLogging sends log output to the console and to logFile.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		logFile = "gen_positions_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return errors.Wrap(err, "failed to create log file")
	}

	if err := logger.InitWithWriter(io.MultiWriter(os.Stdout, file), logger.FormatText); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	if verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return err
		}
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the generator tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`FUTVIS Synthetic Positions Tool
===============================

Writes a synthetic player-positions CSV in the video pipeline format and,
optionally, smoke-checks a running dashboard.

Usage:
  go run ./cmd/gen-positions [options]

Options:
  -output string
        CSV file to write (default: positions_TIMESTAMP.csv)
  -minutes int
        Match minutes to generate (default 10)
  -players int
        Players tracked per frame (default 22)
  -step duration
        Time between frames (default 1s)
  -dropout float
        Probability a player is missed in a frame (default 0.05)
  -seed uint
        Seed for the position walk (default: derived from the run id)
  -url string
        Base URL of a running dashboard to verify (default: skip)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file (default: gen_positions_TIMESTAMP.log)
  -verbose
        Enable debug logging
  -help
        Show this help

Checks:
  1. /healthz reports a loaded dataset
  2. /api/occupancy sums to 100% (+/-1) for every minute with samples
  3. every /panels/{name}.svg renders as an SVG image

Examples:
  go run ./cmd/gen-positions -output src/data.csv -minutes 90
  go run ./cmd/gen-positions -output /tmp/p.csv -url http://localhost:9080
`)
}
