package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/adapters/cache"
	"github.com/okian/futvis/internal/domain/binning"
	"github.com/okian/futvis/internal/domain/hull"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/types"
	"github.com/okian/futvis/pkg/metrics"
)

// Meta describes the active dataset.
func (s *Service) Meta(ctx context.Context) (types.Meta, error) {
	ds, err := s.current()
	if err != nil {
		return types.Meta{}, err
	}
	return s.meta(ctx, ds), nil
}

func (s *Service) meta(ctx context.Context, ds *Dataset) types.Meta {
	return types.Meta{
		DatasetID: ds.ID,
		Source:    ds.Source,
		Samples:   ds.Store.Count(ctx),
		MaxMinute: ds.MaxMinute(),
		Rounding:  string(ds.Occupancy.Rounding()),
		LoadedAt:  ds.LoadedAt,
	}
}

// Occupancy returns the dense zone occupancy table of the active dataset.
func (s *Service) Occupancy(_ context.Context) (types.Occupancy, error) {
	ds, err := s.current()
	if err != nil {
		return types.Occupancy{}, err
	}
	return types.Occupancy{
		DatasetID: ds.ID,
		MaxMinute: ds.MaxMinute(),
		Rounding:  string(ds.Occupancy.Rounding()),
		Rows:      ds.Occupancy.Rows(),
	}, nil
}

// Bins bins the samples inside the window. The fixed grid uses the heatmap
// grid size and smoothing. An empty window yields ErrEmptySelection.
func (s *Service) Bins(ctx context.Context, mode binning.Mode, w model.TimeWindow) (types.Bins, error) {
	ds, err := s.current()
	if err != nil {
		return types.Bins{}, err
	}
	if err := w.Validate(ds.MaxMinute()); err != nil {
		return types.Bins{}, err
	}
	cfg, err := s.binConfig(mode)
	if err != nil {
		return types.Bins{}, err
	}
	st, err := s.bin(ctx, ds, w, cfg)
	if err != nil {
		return types.Bins{}, err
	}
	return types.Bins{Window: w, Label: w.RangeLabel(), Statistic: st}, nil
}

func (s *Service) binConfig(mode binning.Mode) (binning.Config, error) {
	switch mode {
	case binning.ModePositional:
		return binning.Positional(), nil
	case binning.ModeThirds:
		return binning.Thirds(), nil
	case binning.ModeFixedGrid:
		return binning.FixedGrid(s.heatmapRows, s.heatmapCols).Smoothed(s.sigma), nil
	}
	return binning.Config{}, errors.Wrapf(binning.ErrUnknownMode, "%q", mode)
}

func (s *Service) bin(ctx context.Context, ds *Dataset, w model.TimeWindow, cfg binning.Config) (*binning.Statistic, error) {
	from, to := w.Range()
	subset, err := ds.Store.Range(ctx, from, to)
	if err != nil {
		return nil, err
	}
	v, err := s.memo.GetOrLoad(ctx, cache.Key(ds.ID, "bin/"+cfg.Key(), subset), func(context.Context) (any, error) {
		start := time.Now()
		defer func() { metrics.RecordComputeDuration("bin", elapsedMs(start)) }()
		return binning.Bin(subset, cfg)
	})
	if err != nil {
		return nil, err
	}
	st := v.(*binning.Statistic)
	if st.Empty() {
		return nil, errors.Wrapf(model.ErrEmptySelection, "no positions during %s", w.RangeLabel())
	}
	return st, nil
}

// Hull returns the convex hull of the players detected at the window instant.
func (s *Service) Hull(ctx context.Context, w model.TimeWindow) (types.Hull, error) {
	ds, err := s.current()
	if err != nil {
		return types.Hull{}, err
	}
	if err := w.Validate(ds.MaxMinute()); err != nil {
		return types.Hull{}, err
	}
	points, h, err := s.hull(ctx, ds, w)
	if err != nil {
		return types.Hull{}, err
	}
	return types.Hull{
		Instant:    w.Instant(),
		Label:      w.InstantLabel(),
		Points:     points,
		Vertices:   h.Vertices,
		Degenerate: h.Degenerate,
	}, nil
}

func (s *Service) hull(ctx context.Context, ds *Dataset, w model.TimeWindow) ([]model.Point, hull.Hull, error) {
	samples, err := ds.Store.At(ctx, w.Instant())
	if err != nil {
		return nil, hull.Hull{}, err
	}
	if len(samples) == 0 {
		return nil, hull.Hull{}, errors.Wrapf(model.ErrEmptySelection, "no players detected at %s", w.InstantLabel())
	}
	points := make([]model.Point, len(samples))
	for i, smp := range samples {
		points[i] = smp.PitchPoint()
	}
	v, err := s.memo.GetOrLoad(ctx, cache.Key(ds.ID, "hull", samples), func(context.Context) (any, error) {
		start := time.Now()
		defer func() { metrics.RecordComputeDuration("hull", elapsedMs(start)) }()
		return hull.Compute(points), nil
	})
	if err != nil {
		return nil, hull.Hull{}, err
	}
	return points, v.(hull.Hull), nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

// errorType labels err for the error metrics.
func errorType(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, model.ErrEmptySelection):
		return "empty_selection"
	case errors.Is(err, model.ErrDegenerateGeometry):
		return "degenerate_geometry"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "internal"
}
