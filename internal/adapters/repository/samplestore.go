package repository

import (
	"context"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/pkg/metrics"
)

// SampleStore is an immutable Store backed by a slice sorted by timestamp.
// Time filters are two binary searches, so any window costs O(log n) plus
// the size of the result.
type SampleStore struct {
	samples   []model.PositionSample
	maxMinute int

	recordMetrics bool
}

var _ Store = (*SampleStore)(nil)

// NewSampleStore takes ownership of samples and indexes them by timestamp.
// Samples sharing a timestamp keep their input order.
func NewSampleStore(_ context.Context, samples []model.PositionSample, opts ...Option) *SampleStore {
	s := &SampleStore{samples: samples, maxMinute: -1, recordMetrics: true}
	for _, opt := range opts {
		opt(s)
	}

	sort.SliceStable(s.samples, func(i, j int) bool {
		return s.samples[i].Millisecond < s.samples[j].Millisecond
	})
	for _, smp := range s.samples {
		if smp.Minute > s.maxMinute {
			s.maxMinute = smp.Minute
		}
	}
	return s
}

// Range implements Store.
func (s *SampleStore) Range(_ context.Context, from, to int64) ([]model.PositionSample, error) {
	start := time.Now()
	defer s.observe("store_range", start)

	if from > to {
		return nil, errors.Wrapf(ErrInvalidRange, "from %d after to %d", from, to)
	}
	lo := s.lowerBound(from)
	hi := s.upperBound(to)
	return s.samples[lo:hi:hi], nil
}

// At implements Store.
func (s *SampleStore) At(ctx context.Context, ms int64) ([]model.PositionSample, error) {
	return s.Range(ctx, ms, ms)
}

// All implements Store.
func (s *SampleStore) All(_ context.Context) []model.PositionSample {
	return s.samples[:len(s.samples):len(s.samples)]
}

// Count implements Store.
func (s *SampleStore) Count(_ context.Context) int { return len(s.samples) }

// MaxMinute implements Store.
func (s *SampleStore) MaxMinute(_ context.Context) int { return s.maxMinute }

// lowerBound returns the first index whose timestamp is >= ms.
func (s *SampleStore) lowerBound(ms int64) int {
	return sort.Search(len(s.samples), func(i int) bool { return s.samples[i].Millisecond >= ms })
}

// upperBound returns the first index whose timestamp is > ms.
func (s *SampleStore) upperBound(ms int64) int {
	return sort.Search(len(s.samples), func(i int) bool { return s.samples[i].Millisecond > ms })
}

func (s *SampleStore) observe(op string, start time.Time) {
	if !s.recordMetrics {
		return
	}
	metrics.RecordComputeDuration(op, float64(time.Since(start).Microseconds())/1000)
}
