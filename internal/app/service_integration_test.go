package service_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/okian/futvis/internal/adapters/http/api"
	"github.com/okian/futvis/internal/adapters/http/site"
	"github.com/okian/futvis/internal/adapters/http/swagger"
	service "github.com/okian/futvis/internal/app"
	"github.com/okian/futvis/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type stack struct {
	svc  *service.Service
	srv  *httptest.Server
	path string
}

func newStack(t *testing.T) *stack {
	t.Helper()
	path := writeCSV(t, fixtureCSV)
	svc := service.New(service.WithDataPath(path))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	site.Register(context.Background(), mux)
	swagger.Register(context.Background(), mux)
	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return &stack{svc: svc, srv: srv, path: path}
}

func (s *stack) call(method, path string) (int, http.Header, []byte) {
	req, err := http.NewRequest(method, s.srv.URL+path, nil)
	So(err, ShouldBeNil)
	resp, err := http.DefaultClient.Do(req)
	So(err, ShouldBeNil)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	So(err, ShouldBeNil)
	return resp.StatusCode, resp.Header, body
}

func (s *stack) getJSON(path string, v any) int {
	status, _, body := s.call(http.MethodGet, path)
	So(sonic.Unmarshal(body, v), ShouldBeNil)
	return status
}

func TestServiceIntegration_Data(t *testing.T) {
	Convey("Given the full HTTP stack over the two minute fixture", t, func() {
		s := newStack(t)

		Convey("Meta describes the dataset", func() {
			var meta types.Meta
			So(s.getJSON("/api/meta", &meta), ShouldEqual, http.StatusOK)
			So(meta.Samples, ShouldEqual, 10)
			So(meta.MaxMinute, ShouldEqual, 1)
			So(meta.DatasetID, ShouldNotBeEmpty)
		})

		Convey("Occupancy is dense and sums per minute", func() {
			var occ types.Occupancy
			So(s.getJSON("/api/occupancy", &occ), ShouldEqual, http.StatusOK)
			So(len(occ.Rows), ShouldEqual, 6)

			got := map[string]int{}
			sums := map[int]int{}
			for _, r := range occ.Rows {
				got[string(r.Zone)+"/"+strconv.Itoa(r.Minute)] = r.Percentage
				sums[r.Minute] += r.Percentage
			}
			So(got["attacking/0"], ShouldEqual, 60)
			So(got["middle/0"], ShouldEqual, 40)
			So(got["defensive/0"], ShouldEqual, 0)
			So(got["defensive/1"], ShouldEqual, 40)
			So(sums[0], ShouldEqual, 100)
			So(sums[1], ShouldEqual, 100)
		})

		Convey("Bins cover the window", func() {
			var bins struct {
				Label     string `json:"label"`
				Statistic struct {
					Total int `json:"total"`
				} `json:"statistic"`
			}
			So(s.getJSON("/api/bins/thirds?start=0&end=1", &bins), ShouldEqual, http.StatusOK)
			So(bins.Statistic.Total, ShouldEqual, 5)
			So(bins.Label, ShouldEqual, "00:00 - 01:00")
		})

		Convey("The hull is taken at the instant", func() {
			var h types.Hull
			So(s.getJSON("/api/hull?start=1&second=1", &h), ShouldEqual, http.StatusOK)
			So(h.Instant, ShouldEqual, 61000)
			So(len(h.Points), ShouldEqual, 5)
			So(len(h.Vertices), ShouldBeGreaterThanOrEqualTo, 3)
		})

		Convey("Bad requests map to error codes", func() {
			var e struct {
				Code string `json:"code"`
			}
			So(s.getJSON("/api/bins/thirds?start=abc", &e), ShouldEqual, http.StatusBadRequest)
			So(e.Code, ShouldEqual, "bad_request")
			So(s.getJSON("/api/bins/thirds?start=0&end=5", &e), ShouldEqual, http.StatusBadRequest)
			So(s.getJSON("/api/bins/thirds?start=0&end=0", &e), ShouldEqual, http.StatusNotFound)
			So(e.Code, ShouldEqual, "empty_selection")
			So(s.getJSON("/api/bins/hexagons", &e), ShouldEqual, http.StatusNotFound)
			So(e.Code, ShouldEqual, "not_found")
		})
	})
}

func TestServiceIntegration_Panels(t *testing.T) {
	Convey("Given the full HTTP stack", t, func() {
		s := newStack(t)

		Convey("The dashboard links every panel", func() {
			status, header, body := s.call(http.MethodGet, "/")
			So(status, ShouldEqual, http.StatusOK)
			So(header.Get("Content-Type"), ShouldStartWith, "text/html")
			for _, p := range types.Panels {
				So(string(body), ShouldContainSubstring, "/panels/"+string(p)+".svg")
			}
		})

		Convey("Every panel renders as SVG", func() {
			for _, p := range types.Panels {
				status, header, body := s.call(http.MethodGet, "/panels/"+string(p)+".svg?start=0&end=1&second=1")
				So(status, ShouldEqual, http.StatusOK)
				So(header.Get("Content-Type"), ShouldStartWith, "image/svg+xml")
				So(string(body), ShouldContainSubstring, "<svg")
			}
		})

		Convey("An empty instant renders a placeholder", func() {
			status, _, body := s.call(http.MethodGet, "/panels/hull.svg?start=0&second=30")
			So(status, ShouldEqual, http.StatusOK)
			So(string(body), ShouldContainSubstring, "No players detected at 00:30")
		})

		Convey("Assets and API docs are served next to the panels", func() {
			status, _, _ := s.call(http.MethodGet, "/assets/dashboard.js")
			So(status, ShouldEqual, http.StatusOK)
			status, _, body := s.call(http.MethodGet, "/openapi.yaml")
			So(status, ShouldEqual, http.StatusOK)
			So(string(body), ShouldContainSubstring, "/api/occupancy")
		})
	})
}

func TestServiceIntegration_Reload(t *testing.T) {
	Convey("Given the full HTTP stack serving panels", t, func() {
		s := newStack(t)

		var before types.Meta
		So(s.getJSON("/api/meta", &before), ShouldEqual, http.StatusOK)

		Convey("Reloading a grown file swaps the dataset under concurrent readers", func() {
			So(os.WriteFile(s.path, []byte(fixtureCSV+"40,60,121000,2,middle\n"), 0o600), ShouldBeNil)

			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				statuses []int
			)
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					resp, err := http.Get(s.srv.URL + "/panels/thirds.svg?start=0&end=1")
					if err != nil {
						return
					}
					_ = resp.Body.Close()
					mu.Lock()
					statuses = append(statuses, resp.StatusCode)
					mu.Unlock()
				}()
			}

			var after types.Meta
			So(s.getJSONPost("/api/reload", &after), ShouldEqual, http.StatusOK)
			wg.Wait()

			So(after.DatasetID, ShouldNotEqual, before.DatasetID)
			So(after.MaxMinute, ShouldEqual, 2)
			So(len(statuses), ShouldEqual, 8)
			for _, code := range statuses {
				So(code, ShouldEqual, http.StatusOK)
			}

			var hc types.Health
			So(s.getJSON("/healthz", &hc), ShouldEqual, http.StatusOK)
			So(hc.DatasetID, ShouldEqual, after.DatasetID)
		})

		Convey("Reloading a malformed file keeps the dataset", func() {
			So(os.WriteFile(s.path, []byte("x,y\n1,2\n"), 0o600), ShouldBeNil)

			var e struct {
				Code string `json:"code"`
			}
			status := s.getJSONPost("/api/reload", &e)
			So(status, ShouldEqual, http.StatusBadRequest)
			So(e.Code, ShouldEqual, "bad_request")

			var meta types.Meta
			So(s.getJSON("/api/meta", &meta), ShouldEqual, http.StatusOK)
			So(meta.DatasetID, ShouldEqual, before.DatasetID)
		})

		Convey("Reload only accepts POST", func() {
			status, _, body := s.call(http.MethodGet, "/api/reload")
			So(status, ShouldEqual, http.StatusMethodNotAllowed)
			So(strings.Contains(string(body), "method_not_allowed"), ShouldBeTrue)
		})
	})
}

func (s *stack) getJSONPost(path string, v any) int {
	status, _, body := s.call(http.MethodPost, path)
	So(sonic.Unmarshal(body, v), ShouldBeNil)
	return status
}
