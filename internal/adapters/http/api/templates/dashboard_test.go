package templates_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/okian/futvis/internal/adapters/http/api/templates"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func render(ctx context.Context, data templates.DashboardPageData) (string, error) {
	var buf bytes.Buffer
	err := templates.Dashboard(data).Render(ctx, &buf)
	return buf.String(), err
}

func TestDashboard(t *testing.T) {
	Convey("Given a loaded dataset", t, func() {
		data := templates.DashboardPageData{
			Ready:     true,
			Meta:      types.Meta{DatasetID: "ds<1>", MaxMinute: 90},
			Window:    model.TimeWindow{StartMinute: 2, EndMinute: 3, Second: 5},
			AssetsURL: "/assets/",
		}
		page, err := render(context.Background(), data)
		So(err, ShouldBeNil)

		Convey("Then the sliders should carry their bounds and values", func() {
			So(page, ShouldContainSubstring, `<input type="range" name="start" id="start" min="0" max="90" value="2">`)
			So(page, ShouldContainSubstring, `<input type="range" name="end" id="end" min="0" max="90" value="3">`)
			So(page, ShouldContainSubstring, `<input type="range" name="second" id="second" min="0" max="59" value="5">`)
		})

		Convey("Then dynamic text should be escaped", func() {
			So(page, ShouldContainSubstring, "ds&lt;1&gt;")
			So(page, ShouldNotContainSubstring, "ds<1>")
			So(page, ShouldContainSubstring, `<output id="second-label">05</output>`)
		})

		Convey("Then every panel should point at its chart with escaped query", func() {
			for _, card := range templates.Cards(data.Window) {
				So(page, ShouldContainSubstring, `id="panel-`+string(card.Panel)+`"`)
				url := strings.ReplaceAll(templates.PanelURL(card.Panel, data.Window), "&", "&amp;")
				So(page, ShouldContainSubstring, `src="`+url+`"`)
			}
		})

		Convey("Then the script and stylesheet should load from the assets prefix", func() {
			So(page, ShouldContainSubstring, `<link rel="stylesheet" href="/assets/style.css">`)
			So(page, ShouldContainSubstring, `<script src="/assets/dashboard.js" defer></script>`)
		})
	})

	Convey("Given no dataset", t, func() {
		page, err := render(context.Background(), templates.DashboardPageData{AssetsURL: "/assets/"})
		So(err, ShouldBeNil)

		Convey("Then only the notice should render", func() {
			So(page, ShouldContainSubstring, "No dataset loaded yet.")
			So(page, ShouldNotContainSubstring, "dashboard.js")
			So(page, ShouldNotContainSubstring, `class="filters"`)
			So(page, ShouldEndWith, "</body></html>")
		})
	})

	Convey("Given a canceled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		page, err := render(ctx, templates.DashboardPageData{Ready: true})

		Convey("Then nothing should be written", func() {
			So(err, ShouldEqual, context.Canceled)
			So(page, ShouldBeEmpty)
		})
	})
}

func TestSecondLabel(t *testing.T) {
	Convey("Given single and double digit seconds", t, func() {
		So(templates.SecondLabel(model.TimeWindow{Second: 7}), ShouldEqual, "07")
		So(templates.SecondLabel(model.TimeWindow{Second: 42}), ShouldEqual, "42")
	})
}
