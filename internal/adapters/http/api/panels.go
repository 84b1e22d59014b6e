package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/adapters/render"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/types"
	"github.com/okian/futvis/pkg/logger"
	"github.com/okian/futvis/pkg/metrics"
)

const unavailableMessage = "This panel is unavailable right now"

// PanelHandler serves the dashboard charts as SVG.
type PanelHandler struct {
	deps Dependencies
}

// NewPanelHandler creates a new panel handler.
func NewPanelHandler(deps Dependencies) *PanelHandler {
	return &PanelHandler{deps: deps}
}

// HandlePanel handles GET /panels/{panel}.svg requests. Failures stay inside
// the panel: anything but a bad request is answered with a placeholder chart.
func (h *PanelHandler) HandlePanel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/panels/")
	if !strings.HasSuffix(name, ".svg") {
		writeFailure(r.Context(), w, errors.Wrapf(ErrUnknownPanel, "%q", name))
		return
	}
	p := types.Panel(strings.TrimSuffix(name, ".svg"))
	if !p.Valid() {
		writeFailure(r.Context(), w, errors.Wrapf(ErrUnknownPanel, "%q", p))
		return
	}

	var win model.TimeWindow
	if h.deps.Ready() {
		var err error
		if win, err = windowFrom(r.Context(), r, h.deps); err != nil {
			writeFailure(r.Context(), w, err)
			return
		}
	}

	chart, err := h.render(r.Context(), p, win)
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", chart.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = chart.WriteTo(w)
}

// render returns the chart or its placeholder. Only a window outside the
// match comes back as an error.
func (h *PanelHandler) render(ctx context.Context, p types.Panel, win model.TimeWindow) (chart *render.Chart, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Get().Error(ctx, "panel render panicked",
				logger.String("panel", string(p)),
				logger.String("panic", fmt.Sprint(rec)),
			)
			metrics.RecordPanelRender(string(p), "error")
			chart, err = h.deps.Placeholder(p, unavailableMessage), nil
		}
	}()

	if !h.deps.Ready() {
		return h.deps.Placeholder(p, "No dataset loaded"), nil
	}
	chart, err = h.deps.Panel(ctx, p, win)
	switch {
	case err == nil:
		return chart, nil
	case errors.Is(err, model.ErrInvalidInput):
		return nil, err
	}
	logger.Get().Error(ctx, "panel render failed", logger.String("panel", string(p)), logger.Error(err))
	return h.deps.Placeholder(p, unavailableMessage), nil
}
