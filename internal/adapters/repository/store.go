// Package repository holds the in-memory, read-only position sample store.
package repository

import (
	"context"

	"github.com/okian/futvis/internal/domain/model"
)

// Store provides read access to the session's position samples. Returned
// slices share memory with the store and must not be modified.
type Store interface {
	// Range returns samples with from <= millisecond <= to, in time order.
	// Returns ErrInvalidRange if from > to.
	Range(ctx context.Context, from, to int64) ([]model.PositionSample, error)

	// At returns the samples recorded exactly at ms.
	At(ctx context.Context, ms int64) ([]model.PositionSample, error)

	// All returns every sample in time order.
	All(ctx context.Context) []model.PositionSample

	// Count returns the number of samples held.
	Count(ctx context.Context) int

	// MaxMinute returns the largest minute present, or -1 when empty.
	MaxMinute(ctx context.Context) int
}
