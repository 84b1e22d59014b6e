package repository

import (
	"context"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func at(ms int64, zone model.Zone) model.PositionSample {
	return model.PositionSample{Millisecond: ms, Minute: model.MinuteOf(ms), Zone: zone}
}

func TestSampleStore_Range(t *testing.T) {
	ctx := context.Background()

	Convey("Given samples out of time order", t, func() {
		store := NewSampleStore(ctx, []model.PositionSample{
			at(120_000, model.ZoneAttacking),
			at(0, model.ZoneDefensive),
			at(60_000, model.ZoneMiddle),
			at(60_000, model.ZoneAttacking),
			at(61_000, model.ZoneMiddle),
		}, WithQueryMetrics(false))

		Convey("Then the store should be sorted and report its extent", func() {
			all := store.All(ctx)
			So(store.Count(ctx), ShouldEqual, 5)
			So(store.MaxMinute(ctx), ShouldEqual, 2)
			for i := 1; i < len(all); i++ {
				So(all[i-1].Millisecond, ShouldBeLessThanOrEqualTo, all[i].Millisecond)
			}
		})

		Convey("Then equal timestamps should keep input order", func() {
			got, err := store.At(ctx, 60_000)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 2)
			So(got[0].Zone, ShouldEqual, model.ZoneMiddle)
			So(got[1].Zone, ShouldEqual, model.ZoneAttacking)
		})

		Convey("Then both range bounds should be inclusive", func() {
			got, err := store.Range(ctx, 0, 60_000)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 3)

			got, err = store.Range(ctx, 60_000, 120_000)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 4)
		})

		Convey("Then a range without samples should be empty", func() {
			got, err := store.Range(ctx, 200_000, 300_000)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)

			got, err = store.At(ctx, 1)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("Then a reversed range should be rejected", func() {
			_, err := store.Range(ctx, 10, 5)
			So(errors.Is(err, ErrInvalidRange), ShouldBeTrue)
		})

		Convey("Then appending to a result should not clobber the store", func() {
			got, _ := store.Range(ctx, 0, 0)
			_ = append(got, at(999, model.ZoneMiddle))
			next, _ := store.At(ctx, 60_000)
			So(next[0].Millisecond, ShouldEqual, 60_000)
		})
	})

	Convey("Given an empty store", t, func() {
		store := NewSampleStore(ctx, nil)
		So(store.Count(ctx), ShouldEqual, 0)
		So(store.MaxMinute(ctx), ShouldEqual, -1)
		got, err := store.Range(ctx, 0, 60_000)
		So(err, ShouldBeNil)
		So(got, ShouldBeEmpty)
	})
}

func TestSampleStore_MatchesLinearScan(t *testing.T) {
	ctx := context.Background()

	Convey("Given random samples", t, func() {
		rng := rand.New(rand.NewSource(9))
		samples := make([]model.PositionSample, 3000)
		for i := range samples {
			samples[i] = at(int64(rng.Intn(90*60))*1000, model.Zones[rng.Intn(3)])
		}
		raw := append([]model.PositionSample(nil), samples...)
		store := NewSampleStore(ctx, samples, WithQueryMetrics(false))

		Convey("Then every window should match a linear filter", func() {
			for i := 0; i < 50; i++ {
				a := int64(rng.Intn(90)) * model.MillisPerMinute
				b := a + int64(rng.Intn(10))*model.MillisPerMinute
				want := 0
				for _, s := range raw {
					if s.Millisecond >= a && s.Millisecond <= b {
						want++
					}
				}
				got, err := store.Range(ctx, a, b)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, want)
			}
		})
	})
}
