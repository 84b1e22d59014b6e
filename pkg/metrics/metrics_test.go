package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func familyNames(registry *prometheus.Registry) map[string]bool {
	families, err := registry.Gather()
	So(err, ShouldBeNil)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should register under the futvis namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
				manager.cacheHits.Inc()
				So(familyNames(registry)["futvis_dashboard_cache_hits_total"], ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithRefreshInterval(3*time.Second),
				WithInstance("pitch-1"),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.RefreshInterval(), ShouldEqual, 3*time.Second)
				manager.cacheEntries.Set(4)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() != "test_dashboard_cache_entries" {
						continue
					}
					found = true
					So(f.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 4)
					So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "instance")
					So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "pitch-1")
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsOptionsValidation(t *testing.T) {
	Convey("Given empty option values", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(
			WithNamespace(""),
			WithInstance(""),
			WithRefreshInterval(-1*time.Second),
			WithPrometheusRegistry(nil),
			WithPrometheusRegistry(registry),
		)

		Convey("Then the defaults should be kept", func() {
			So(manager.namespace, ShouldEqual, "futvis")
			So(manager.customLabels, ShouldBeEmpty)
			So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording panel and compute metrics", func() {
			So(func() {
				RecordPanelRender("heatmap", "ok")
				RecordPanelRender("hull", "placeholder")
				RecordPanelRenderDuration("heatmap", 12.5)
				RecordComputeDuration("bin", 0.7)
			}, ShouldNotPanic)
		})

		Convey("When recording cache metrics", func() {
			So(func() {
				RecordCacheHit()
				RecordCacheMiss()
				RecordCacheEviction()
				UpdateCacheEntries(10)
			}, ShouldNotPanic)
		})

		Convey("When recording dataset metrics", func() {
			So(func() {
				UpdateDatasetSamples(1200)
				UpdateDatasetMaxMinute(90)
				RecordDatasetLoad("ok", 42)
				RecordDatasetLoad("error", 0)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP, error and system metrics", func() {
			So(func() {
				RecordHTTPRequest("/api/meta", "GET", "200")
				RecordHTTPRequestDuration("/api/meta", "GET", "200", 1.5)
				RecordErrorByComponent("source", "invalid_input")
				RecordErrorByEndpoint("/api/bins", "GET", "bad_request")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry should expose them", func() {
			RecordPanelRender("thirds", "ok")
			names := familyNames(GetRegistry())
			So(names["futvis_dashboard_panel_renders_total"], ShouldBeTrue)
			So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given a reconfigured global manager", t, func() {
		before := GetRegistry()
		Configure(WithNamespace("replay"), WithRefreshInterval(time.Second))
		defer Configure()

		RecordDatasetLoad("ok", 5)

		Convey("Then recorders should land on a fresh registry", func() {
			So(GetRegistry(), ShouldNotEqual, before)
			names := familyNames(GetRegistry())
			So(names["replay_dashboard_dataset_loads_total"], ShouldBeTrue)
			So(names["futvis_dashboard_dataset_loads_total"], ShouldBeFalse)
			So(RefreshInterval(), ShouldEqual, time.Second)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("When recording metrics concurrently", t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					RecordCacheHit()
					RecordPanelRender("timeline", "ok")
					RecordHTTPRequest("/panels/timeline.svg", "GET", "200")
				}
			}()
		}
		wg.Wait()

		Convey("Then nothing should race or panic", func() {
			So(familyNames(GetRegistry())["futvis_dashboard_http_requests_total"], ShouldBeTrue)
		})
	})
}
