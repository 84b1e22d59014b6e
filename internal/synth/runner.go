package synth

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/okian/futvis/pkg/logger"
)

// Run generates a dataset and, when a base URL is set, smoke-checks the
// dashboard serving it.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting synthetic positions run",
		logger.String("runID", stats.RunID),
		logger.String("output", config.OutputFile),
		logger.Int("minutes", config.Minutes),
		logger.Int("players", config.Players),
		logger.Duration("frameStep", config.FrameStep),
		logger.String("baseURL", config.BaseURL))

	// Step 1: Generate the dataset
	if config.OutputFile == "" {
		config.OutputFile = "positions_" + time.Now().Format("20060102_150405") + ".csv"
	}
	gen, err := NewGenerator(*config, stats.RunID)
	if err != nil {
		return stats, err
	}
	rows, err := gen.WriteFile(ctx, config.OutputFile)
	stats.RowsWritten = rows
	if err != nil {
		return stats, errors.Wrap(err, "dataset generation failed")
	}
	logger.Get().Info(ctx, "dataset written",
		logger.String("filename", config.OutputFile),
		logger.Int("rows", rows))

	if config.BaseURL == "" {
		finish(ctx, stats)
		return stats, nil
	}

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 2: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, errors.Wrap(err, "service health check failed")
	}

	// Step 3: Verify occupancy invariant
	if err := verifyOccupancy(ctx, client, stats); err != nil {
		return stats, errors.Wrap(err, "occupancy verification failed")
	}

	// Step 4: Verify panels
	if err := verifyPanels(ctx, client, stats); err != nil {
		return stats, errors.Wrap(err, "panel verification failed")
	}

	finish(ctx, stats)
	return stats, nil
}

func finish(ctx context.Context, stats *Stats) {
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Info(ctx, "final statistics",
		logger.String("runID", stats.RunID),
		logger.Int("rowsWritten", stats.RowsWritten),
		logger.Int("minutesChecked", stats.MinutesChecked),
		logger.Int("panelsChecked", stats.PanelsChecked),
		logger.Int("panelsFailed", stats.PanelsFailed),
		logger.Duration("duration", stats.Duration))
}
