package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/futvis/internal/synth"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	var (
		outputFile = flag.String("output", "", "CSV file to write (default: positions_TIMESTAMP.csv)")
		minutes    = flag.Int("minutes", synth.DefaultMinutes, "Match minutes to generate")
		players    = flag.Int("players", synth.DefaultPlayers, "Players tracked per frame")
		step       = flag.Duration("step", synth.DefaultFrameStep, "Time between frames")
		dropout    = flag.Float64("dropout", synth.DefaultDropout, "Probability a player is missed in a frame")
		seed       = flag.Uint64("seed", 0, "Seed for the position walk (default: derived from the run id)")
		baseURL    = flag.String("url", "", "Base URL of a running dashboard to verify")
		timeout    = flag.Duration("timeout", synth.DefaultTimeout, "HTTP request timeout")
		logFile    = flag.String("log", "", "Log file (default: gen_positions_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		synth.ShowHelp()
		return
	}

	if err := synth.SetupLogging(*logFile, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &synth.Config{
		BaseURL:    *baseURL,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Minutes:    *minutes,
		Players:    *players,
		FrameStep:  *step,
		Dropout:    *dropout,
		Seed:       *seed,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if _, err := synth.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Run failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
