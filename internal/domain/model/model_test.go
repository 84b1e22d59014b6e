package model_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	model "github.com/okian/futvis/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestZone(t *testing.T) {
	convey.Convey("Given the known zones", t, func() {
		convey.Convey("Then they should be valid and ordered from own goal", func() {
			convey.So(model.ZoneDefensive.Valid(), convey.ShouldBeTrue)
			convey.So(model.ZoneMiddle.Valid(), convey.ShouldBeTrue)
			convey.So(model.ZoneAttacking.Valid(), convey.ShouldBeTrue)
			convey.So(model.ZoneDefensive.Index(), convey.ShouldEqual, 0)
			convey.So(model.ZoneAttacking.Index(), convey.ShouldEqual, 2)
		})

		convey.Convey("When the zone is unknown", func() {
			z := model.Zone("goalkeeper")

			convey.Convey("Then it should be rejected", func() {
				convey.So(z.Valid(), convey.ShouldBeFalse)
				convey.So(z.Index(), convey.ShouldEqual, -1)
			})
		})
	})
}

func TestPositionSample(t *testing.T) {
	convey.Convey("Given a sample from the CSV", t, func() {
		s := model.PositionSample{X: 10, Y: 100, Millisecond: 61_500, Minute: 1, Zone: model.ZoneAttacking}

		convey.Convey("Then its pitch point should swap the axes", func() {
			p := s.PitchPoint()
			convey.So(p.X, convey.ShouldEqual, 100)
			convey.So(p.Y, convey.ShouldEqual, 10)
			convey.So(p.OnPitch(), convey.ShouldBeTrue)
		})

		convey.Convey("Then the minute should match the timestamp", func() {
			convey.So(model.MinuteOf(s.Millisecond), convey.ShouldEqual, s.Minute)
			convey.So(model.MinuteOf(-1), convey.ShouldEqual, -1)
		})

		convey.Convey("When the sample is off the pitch", func() {
			p := model.Point{X: 121, Y: 40}

			convey.Convey("Then OnPitch should be false", func() {
				convey.So(p.OnPitch(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestTimeWindow(t *testing.T) {
	convey.Convey("Given a time window", t, func() {
		w := model.TimeWindow{StartMinute: 2, EndMinute: 5, Second: 30}

		convey.Convey("Then its range and instant should be in milliseconds", func() {
			from, to := w.Range()
			convey.So(from, convey.ShouldEqual, 120_000)
			convey.So(to, convey.ShouldEqual, 300_000)
			convey.So(w.Instant(), convey.ShouldEqual, 150_000)
		})

		convey.Convey("Then its labels should be zero padded", func() {
			convey.So(w.RangeLabel(), convey.ShouldEqual, "02:00 - 05:00")
			convey.So(w.InstantLabel(), convey.ShouldEqual, "02:30")
		})

		convey.Convey("When validated against a long enough match", func() {
			convey.So(w.Validate(10), convey.ShouldBeNil)
		})

		convey.Convey("When the end exceeds the match", func() {
			err := w.Validate(4)

			convey.Convey("Then it should be an invalid input", func() {
				convey.So(errors.Is(err, model.ErrInvalidInput), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the end precedes the start", func() {
			err := model.TimeWindow{StartMinute: 5, EndMinute: 2}.Validate(10)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, model.ErrInvalidInput), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the second is out of range", func() {
			err := model.TimeWindow{StartMinute: 0, EndMinute: 1, Second: 60}.Validate(10)

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the second is clamped", func() {
			convey.So(w.WithSecond(99).Second, convey.ShouldEqual, 59)
			convey.So(w.WithSecond(-3).Second, convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given the full window of a 0-minute match", t, func() {
		w := model.FullWindow(-1)

		convey.Convey("Then it should be clamped at minute zero", func() {
			convey.So(w.StartMinute, convey.ShouldEqual, 0)
			convey.So(w.EndMinute, convey.ShouldEqual, 0)
		})
	})
}

func TestErrorKinds(t *testing.T) {
	convey.Convey("Given an invalid input error", t, func() {
		err := model.NewInvalidInput("zone_played", 3, "unknown zone")

		convey.Convey("Then it should match the sentinel and carry the location", func() {
			convey.So(errors.Is(err, model.ErrInvalidInput), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "row 3")
			convey.So(err.Error(), convey.ShouldContainSubstring, "zone_played")

			var iie *model.InvalidInputError
			convey.So(errors.As(err, &iie), convey.ShouldBeTrue)
			convey.So(iie.Column, convey.ShouldEqual, "zone_played")
		})

		convey.Convey("Then it should be fatal", func() {
			convey.So(model.IsNonFatal(err), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given panel level errors", t, func() {
		convey.Convey("Then they should be non-fatal even when wrapped", func() {
			convey.So(model.IsNonFatal(errors.Wrap(model.ErrEmptySelection, "heatmap")), convey.ShouldBeTrue)
			convey.So(model.IsNonFatal(model.ErrDegenerateGeometry), convey.ShouldBeTrue)
		})
	})
}
