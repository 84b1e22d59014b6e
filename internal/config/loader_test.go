package config_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8050")
				convey.So(cfg.CacheSize, convey.ShouldEqual, 256)
				convey.So(cfg.HeatmapRows, convey.ShouldEqual, 32)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FUTVIS_ADDR", ":8080")
			_ = os.Setenv("FUTVIS_DATA_PATH", "/data/positions.csv")
			_ = os.Setenv("FUTVIS_CACHE_SIZE", "16")
			_ = os.Setenv("FUTVIS_SMOOTHING_SIGMA", "2.5")
			_ = os.Setenv("FUTVIS_OCCUPANCY_ROUNDING", "largest_remainder")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/data/positions.csv")
				convey.So(cfg.CacheSize, convey.ShouldEqual, 16)
				convey.So(cfg.SmoothingSigma, convey.ShouldEqual, 2.5)
				convey.So(cfg.OccupancyRounding, convey.ShouldEqual, "largest_remainder")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
data_path: "match.csv"
heatmap_rows: 24
heatmap_cols: 16
log_format: json
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FUTVIS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep defaults for the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "match.csv")
				convey.So(cfg.HeatmapRows, convey.ShouldEqual, 24)
				convey.So(cfg.HeatmapCols, convey.ShouldEqual, 16)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.CacheSize, convey.ShouldEqual, 256)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
cache_size: 64
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FUTVIS_CONFIG", tmpFile)
			_ = os.Setenv("FUTVIS_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080") // Overridden by env
				convey.So(cfg.CacheSize, convey.ShouldEqual, 64) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FUTVIS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("FUTVIS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("FUTVIS_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading metrics settings from the environment", func() {
			_ = os.Setenv("FUTVIS_METRICS_NAMESPACE", "stadium")
			_ = os.Setenv("FUTVIS_METRICS_REFRESH_INTERVAL", "30s")
			_ = os.Setenv("FUTVIS_METRICS_INSTANCE", "pitch-2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the duration should be parsed from its string form", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "stadium")
				convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 30*time.Second)
				convey.So(cfg.MetricsInstance, convey.ShouldEqual, "pitch-2")
			})
		})

		convey.Convey("When loading config with a non-numeric cache size", func() {
			_ = os.Setenv("FUTVIS_CACHE_SIZE", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then decoding should fail", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"FUTVIS_CONFIG",
		"FUTVIS_ADDR",
		"FUTVIS_DATA_PATH",
		"FUTVIS_CACHE_SIZE",
		"FUTVIS_SMOOTHING_SIGMA",
		"FUTVIS_OCCUPANCY_ROUNDING",
		"FUTVIS_METRICS_NAMESPACE",
		"FUTVIS_METRICS_REFRESH_INTERVAL",
		"FUTVIS_METRICS_INSTANCE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "futvis-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
