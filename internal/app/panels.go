package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/adapters/cache"
	"github.com/okian/futvis/internal/adapters/render"
	"github.com/okian/futvis/internal/domain/binning"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/types"
	"github.com/okian/futvis/pkg/logger"
	"github.com/okian/futvis/pkg/metrics"
)

var panelTitles = map[types.Panel]string{
	types.PanelHull:       "Players position",
	types.PanelHeatmap:    "Most played zones",
	types.PanelPositional: "Juego de posición",
	types.PanelThirds:     "Covered zones",
	types.PanelTimeline:   "Played zone through time",
}

// Title returns the heading shown above a panel.
func Title(p types.Panel) string { return panelTitles[p] }

// Panel renders one dashboard chart for the window. Empty selections come
// back as a placeholder chart rather than an error.
func (s *Service) Panel(ctx context.Context, p types.Panel, w model.TimeWindow) (*render.Chart, error) {
	if !p.Valid() {
		return nil, errors.Wrapf(ErrUnknownPanel, "%q", p)
	}
	ds, err := s.current()
	if err != nil {
		return nil, err
	}
	if err := w.Validate(ds.MaxMinute()); err != nil {
		return nil, err
	}

	start := time.Now()
	chart, err := s.renderPanel(ctx, ds, p, w)
	outcome := "ok"
	if err != nil {
		if !model.IsNonFatal(err) {
			metrics.RecordPanelRender(string(p), "error")
			metrics.RecordErrorByComponent("render", errorType(err))
			return nil, err
		}
		s.log().Debug(ctx, "panel degraded to placeholder",
			logger.String("panel", string(p)),
			logger.String("window", w.String()),
			logger.Error(err),
		)
		outcome = "placeholder"
		chart = s.Placeholder(p, placeholderMessage(p, w))
	}
	metrics.RecordPanelRender(string(p), outcome)
	metrics.RecordPanelRenderDuration(string(p), elapsedMs(start))
	return chart, nil
}

// Placeholder renders the empty state of a panel.
func (s *Service) Placeholder(p types.Panel, message string) *render.Chart {
	return s.renderer.Placeholder(Title(p), message)
}

func placeholderMessage(p types.Panel, w model.TimeWindow) string {
	switch p {
	case types.PanelHull:
		return "No players detected at " + w.InstantLabel()
	case types.PanelTimeline:
		return "No positions in this match"
	}
	return "No positions during " + w.RangeLabel()
}

func (s *Service) renderPanel(ctx context.Context, ds *Dataset, p types.Panel, w model.TimeWindow) (*render.Chart, error) {
	switch p {
	case types.PanelHull:
		points, h, err := s.hull(ctx, ds, w)
		if err != nil {
			return nil, err
		}
		return s.memoChart(ctx, ds.ID, "panel/hull/"+w.InstantLabel(), func() (*render.Chart, error) {
			return s.renderer.Hull(Title(p)+" at "+w.InstantLabel(), h, points), nil
		})

	case types.PanelTimeline:
		return s.memoChart(ctx, ds.ID, "panel/timeline", func() (*render.Chart, error) {
			return s.renderer.Timeline(Title(p), ds.Occupancy)
		})
	}

	mode, draw := s.binPanel(p)
	cfg, err := s.binConfig(mode)
	if err != nil {
		return nil, err
	}
	st, err := s.bin(ctx, ds, w, cfg)
	if err != nil {
		return nil, err
	}
	title := Title(p) + " " + w.RangeLabel()
	key := "panel/" + string(p) + "/" + cfg.Key() + "/" + w.RangeLabel()
	return s.memoChart(ctx, ds.ID, key, func() (*render.Chart, error) {
		return draw(title, st)
	})
}

func (s *Service) binPanel(p types.Panel) (binning.Mode, func(string, *binning.Statistic) (*render.Chart, error)) {
	switch p {
	case types.PanelPositional:
		return binning.ModePositional, s.renderer.Positional
	case types.PanelThirds:
		return binning.ModeThirds, s.renderer.Thirds
	}
	return binning.ModeFixedGrid, s.renderer.Heatmap
}

// memoChart caches a rendered chart. The dataset is immutable, so the
// function identity alone addresses the chart within it.
func (s *Service) memoChart(ctx context.Context, datasetID, function string, draw func() (*render.Chart, error)) (*render.Chart, error) {
	v, err := s.memo.GetOrLoad(ctx, cache.Key(datasetID, function, nil), func(context.Context) (any, error) {
		return draw()
	})
	if err != nil {
		return nil, err
	}
	return v.(*render.Chart), nil
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}
