package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okian/futvis/internal/adapters/repository"
	"github.com/okian/futvis/internal/adapters/source"
	"github.com/okian/futvis/internal/domain/occupancy"
)

// Dataset is an immutable handle over one loaded input file. A reload builds
// a new handle and swaps it in; requests keep whichever handle they started
// with.
type Dataset struct {
	ID        string
	Source    string
	LoadedAt  time.Time
	Store     *repository.SampleStore
	Occupancy *occupancy.Table
}

// MaxMinute is the last minute covered by the dataset, or 0 when empty.
func (d *Dataset) MaxMinute() int {
	if m := d.Occupancy.MaxMinute(); m > 0 {
		return m
	}
	return 0
}

func loadDataset(ctx context.Context, path string, rounding occupancy.Rounding) (*Dataset, error) {
	samples, err := source.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	table, err := occupancy.Aggregate(samples, occupancy.WithRounding(rounding))
	if err != nil {
		return nil, err
	}
	return &Dataset{
		ID:        uuid.NewString(),
		Source:    path,
		LoadedAt:  time.Now().UTC(),
		Store:     repository.NewSampleStore(ctx, samples),
		Occupancy: table,
	}, nil
}
