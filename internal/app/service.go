// Package service provides the session service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/adapters/cache"
	"github.com/okian/futvis/internal/adapters/render"
	"github.com/okian/futvis/internal/domain/occupancy"
	"github.com/okian/futvis/internal/domain/types"
	"github.com/okian/futvis/pkg/logger"
	"github.com/okian/futvis/pkg/metrics"
)

// Service owns the loaded dataset, the memo cache and the renderer.
type Service struct {
	mu sync.Mutex

	dataset  atomic.Pointer[Dataset]
	memo     *cache.Memo
	renderer *render.Renderer

	// Configuration
	dataPath     string
	videoPath    string
	cacheSize    int
	sigma        float64
	heatmapRows  int
	heatmapCols  int
	rounding     occupancy.Rounding
	rendererOpts []render.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataPath sets the positions CSV to load.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithVideoPath sets the match video served next to the panels.
func WithVideoPath(path string) Option {
	return func(s *Service) {
		s.videoPath = path
	}
}

// WithCacheSize bounds the memo cache. Zero disables memoization.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithSmoothingSigma sets the heatmap Gaussian sigma. Zero disables smoothing.
func WithSmoothingSigma(sigma float64) Option {
	return func(s *Service) {
		if sigma >= 0 {
			s.sigma = sigma
		}
	}
}

// WithHeatmapGrid sets the heatmap grid: rows along the length, cols along the width.
func WithHeatmapGrid(rows, cols int) Option {
	return func(s *Service) {
		if rows > 0 && cols > 0 {
			s.heatmapRows = rows
			s.heatmapCols = cols
		}
	}
}

// WithRounding selects how occupancy percentages are rounded.
func WithRounding(r occupancy.Rounding) Option {
	return func(s *Service) {
		if r != "" {
			s.rounding = r
		}
	}
}

// WithRendererOptions passes options through to the chart renderer.
func WithRendererOptions(opts ...render.Option) Option {
	return func(s *Service) {
		s.rendererOpts = append(s.rendererOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:    "src/data.csv",
		videoPath:   "src/video.mp4",
		cacheSize:   256,
		sigma:       1,
		heatmapRows: 32,
		heatmapCols: 24,
		rounding:    occupancy.RoundNaive,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.memo = cache.New(cache.WithLimit(s.cacheSize))
	s.renderer = render.NewRenderer(s.rendererOpts...)
	return s
}

// Start loads the dataset. A malformed input file is fatal to the caller.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...", logger.String("data", s.dataPath))

	ds, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.dataset.Store(ds)

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.String("dataset", ds.ID),
		logger.Int("samples", ds.Store.Count(ctx)),
		logger.Int("maxMinute", ds.MaxMinute()),
		logger.Int("cacheSize", s.cacheSize),
	)
	return nil
}

// Stop releases the dataset and the cache.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping dashboard service...")
	s.dataset.Store(nil)
	s.memo.Purge(ctx)
	s.started = false
	s.logger.Info(ctx, "dashboard service stopped")
}

// Reload reads the input file again and swaps the dataset handle. On failure
// the previous dataset stays active.
func (s *Service) Reload(ctx context.Context) (types.Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.Meta{}, ErrNotStarted
	}

	ds, err := s.load(ctx)
	if err != nil {
		s.logger.Error(ctx, "dataset reload failed, keeping previous dataset", logger.Error(err))
		return types.Meta{}, err
	}
	old := s.dataset.Swap(ds)
	if old != nil {
		n := s.memo.DeletePrefix(ctx, old.ID+"/")
		s.logger.Info(ctx, "dataset reloaded",
			logger.String("previous", old.ID),
			logger.String("dataset", ds.ID),
			logger.Int("invalidated", n),
		)
	}
	return s.meta(ctx, ds), nil
}

func (s *Service) load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	ds, err := loadDataset(ctx, s.dataPath, s.rounding)
	elapsed := elapsedMs(start)
	if err != nil {
		metrics.RecordDatasetLoad("error", elapsed)
		metrics.RecordErrorByComponent("source", errorType(err))
		return nil, errors.Wrapf(err, "load %s", s.dataPath)
	}
	metrics.RecordDatasetLoad("ok", elapsed)
	metrics.UpdateDatasetSamples(ds.Store.Count(ctx))
	metrics.UpdateDatasetMaxMinute(ds.MaxMinute())
	return ds, nil
}

func (s *Service) current() (*Dataset, error) {
	ds := s.dataset.Load()
	if ds == nil {
		return nil, ErrNotStarted
	}
	return ds, nil
}

// VideoPath returns the match video location.
func (s *Service) VideoPath() string { return s.videoPath }

// Ready reports whether a dataset is loaded.
func (s *Service) Ready() bool { return s.dataset.Load() != nil }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"cacheSize":      s.cacheSize,
		"cacheEntries":   s.memo.Len(),
		"smoothingSigma": s.sigma,
		"heatmapRows":    s.heatmapRows,
		"heatmapCols":    s.heatmapCols,
		"rounding":       string(s.rounding),
	}

	if ds := s.dataset.Load(); ds != nil {
		stats["datasetId"] = ds.ID
		stats["samples"] = ds.Store.Count(ctx)
		stats["maxMinute"] = ds.MaxMinute()
		stats["loadedAt"] = ds.LoadedAt.Format(time.RFC3339)

		metrics.UpdateDatasetSamples(ds.Store.Count(ctx))
		metrics.UpdateCacheEntries(s.memo.Len())
	}

	return stats
}
