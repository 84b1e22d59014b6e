// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validate enforces field ranges with struct tags.
package config

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8050".
	Addr string `koanf:"addr" validate:"required"`

	// DataPath points at the positions CSV.
	DataPath string `koanf:"data_path" validate:"required"`

	// VideoPath points at the match video served by /video.
	VideoPath string `koanf:"video_path"`

	// CacheSize bounds the number of memoized panel computations. Zero disables memoization.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// SmoothingSigma is the Gaussian sigma applied to the heatmap grid. Zero disables smoothing.
	SmoothingSigma float64 `koanf:"smoothing_sigma" validate:"gte=0,lte=10"`

	// HeatmapRows and HeatmapCols size the fine heatmap grid (rows along the pitch length).
	HeatmapRows int `koanf:"heatmap_rows" validate:"gte=1,lte=240"`
	HeatmapCols int `koanf:"heatmap_cols" validate:"gte=1,lte=160"`

	// OccupancyRounding is naive or largest_remainder.
	OccupancyRounding string `koanf:"occupancy_rounding" validate:"oneof=naive largest_remainder"`

	// MetricsNamespace prefixes every Prometheus series.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required"`

	// MetricsRefreshInterval is how often sampled gauges are refreshed, e.g. "10s".
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval" validate:"gt=0"`

	// MetricsInstance, when set, labels every series with instance=<value>.
	MetricsInstance string `koanf:"metrics_instance"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8050",
		DataPath:          "src/data.csv",
		VideoPath:         "src/video.mp4",
		CacheSize:         256,
		SmoothingSigma:    1.0,
		HeatmapRows:       32,
		HeatmapCols:       24,
		OccupancyRounding: "naive",

		MetricsNamespace:       "futvis",
		MetricsRefreshInterval: 10 * time.Second,
	}
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return errors.Mark(errors.Wrap(err, "validate config"), ErrInvalidConfig)
	}
	return nil
}
