package synth

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/adapters/http/api"
	"github.com/okian/futvis/internal/adapters/source"
	service "github.com/okian/futvis/internal/app"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func testConfig() Config {
	return Config{
		Minutes:   2,
		Players:   10,
		FrameStep: 500 * time.Millisecond,
		Dropout:   0.1,
		Seed:      42,
		Timeout:   5 * time.Second,
	}
}

func TestGenerator(t *testing.T) {
	Convey("Given a generator", t, func() {
		ctx := context.Background()
		gen, err := NewGenerator(testConfig(), "run-1")
		So(err, ShouldBeNil)

		var buf bytes.Buffer
		rows, err := gen.Write(ctx, &buf)
		So(err, ShouldBeNil)

		Convey("The output parses as a positions file", func() {
			samples, err := source.Read(ctx, bytes.NewReader(buf.Bytes()))
			So(err, ShouldBeNil)
			So(len(samples), ShouldEqual, rows)
			So(rows, ShouldBeGreaterThan, 0)
			// 2 minutes at 2 frames a second, 10 players, minus dropouts.
			So(rows, ShouldBeLessThanOrEqualTo, 2*60*2*10)

			maxMinute := 0
			for _, s := range samples {
				p := s.PitchPoint()
				So(p.OnPitch(), ShouldBeTrue)
				So(s.Zone, ShouldEqual, ZoneOf(p.X))
				So(s.Minute, ShouldEqual, model.MinuteOf(s.Millisecond))
				maxMinute = max(maxMinute, s.Minute)
			}
			So(maxMinute, ShouldEqual, 1)
		})

		Convey("The same seed yields the same file", func() {
			again, err := NewGenerator(testConfig(), "another-run")
			So(err, ShouldBeNil)
			var other bytes.Buffer
			_, err = again.Write(ctx, &other)
			So(err, ShouldBeNil)
			So(other.String(), ShouldEqual, buf.String())
		})
	})

	Convey("Given invalid configs", t, func() {
		cfg := testConfig()
		cfg.Players = 0
		_, err := NewGenerator(cfg, "x")
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

		cfg = testConfig()
		cfg.Dropout = 1
		_, err = NewGenerator(cfg, "x")
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given a canceled context", t, func() {
		gen, err := NewGenerator(testConfig(), "run")
		So(err, ShouldBeNil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var buf bytes.Buffer
		_, err = gen.Write(ctx, &buf)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestZoneOf(t *testing.T) {
	Convey("Lengths map to pitch thirds", t, func() {
		So(ZoneOf(0), ShouldEqual, model.ZoneDefensive)
		So(ZoneOf(39.99), ShouldEqual, model.ZoneDefensive)
		So(ZoneOf(40), ShouldEqual, model.ZoneMiddle)
		So(ZoneOf(79.99), ShouldEqual, model.ZoneMiddle)
		So(ZoneOf(80), ShouldEqual, model.ZoneAttacking)
		So(ZoneOf(120), ShouldEqual, model.ZoneAttacking)
	})
}

func TestRun(t *testing.T) {
	Convey("Given a run without a dashboard", t, func() {
		cfg := testConfig()
		cfg.OutputFile = filepath.Join(t.TempDir(), "nested", "positions.csv")

		stats, err := Run(context.Background(), &cfg)
		So(err, ShouldBeNil)
		So(stats.RunID, ShouldNotBeEmpty)
		So(stats.RowsWritten, ShouldBeGreaterThan, 0)
		So(stats.PanelsChecked, ShouldEqual, 0)

		samples, err := source.Load(context.Background(), cfg.OutputFile)
		So(err, ShouldBeNil)
		So(len(samples), ShouldEqual, stats.RowsWritten)
	})

	Convey("Given a dashboard serving a generated dataset", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		data := filepath.Join(dir, "data.csv")
		gen, err := NewGenerator(testConfig(), "seed-run")
		So(err, ShouldBeNil)
		_, err = gen.WriteFile(ctx, data)
		So(err, ShouldBeNil)

		svc := service.New(service.WithDataPath(data), service.WithVideoPath(filepath.Join(dir, "none.mp4")))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		cfg := testConfig()
		cfg.OutputFile = filepath.Join(dir, "next.csv")
		cfg.BaseURL = srv.URL

		stats, err := Run(ctx, &cfg)
		So(err, ShouldBeNil)
		So(stats.MinutesChecked, ShouldEqual, 2)
		So(stats.PanelsChecked, ShouldEqual, 5)
		So(stats.PanelsFailed, ShouldEqual, 0)
	})
}

func TestVerification(t *testing.T) {
	Convey("Given a dashboard that breaks the occupancy invariant", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/occupancy", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"rows":[
				{"zone_played":"defensive","minute":0,"percentage":50,"count":5},
				{"zone_played":"middle","minute":0,"percentage":40,"count":4},
				{"zone_played":"attacking","minute":0,"percentage":0,"count":0},
				{"zone_played":"defensive","minute":1,"percentage":0,"count":0},
				{"zone_played":"middle","minute":1,"percentage":0,"count":0},
				{"zone_played":"attacking","minute":1,"percentage":0,"count":0}]}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		stats := &Stats{}
		err := verifyOccupancy(context.Background(), newHTTPClient(srv.URL, time.Second), stats)
		So(errors.Is(err, ErrVerification), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "minute 0 sums to 90%")
	})

	Convey("Given a dashboard that is still loading", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"loading"}`))
		}))
		defer srv.Close()

		err := checkServiceHealth(context.Background(), newHTTPClient(srv.URL, time.Second))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "status 503")
	})

	Convey("Given panels that are not images", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/meta", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"max_minute":3}`))
		})
		mux.HandleFunc("/panels/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("nope"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		stats := &Stats{}
		err := verifyPanels(context.Background(), newHTTPClient(srv.URL, time.Second), stats)
		So(errors.Is(err, ErrVerification), ShouldBeTrue)
		So(stats.PanelsFailed, ShouldEqual, 5)
	})
}
