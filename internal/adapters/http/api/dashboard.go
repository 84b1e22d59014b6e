package api

import (
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/okian/futvis/internal/adapters/http/api/templates"
	"github.com/okian/futvis/internal/domain/model"
)

// AssetsPrefix is where the site package serves the page assets.
const AssetsPrefix = "/assets/"

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	deps Dependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleDashboard handles GET / and GET /dashboard requests. The window in
// the query string seeds the filters; an out of range window falls back to
// the whole match.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	data := templates.DashboardPageData{Ready: h.deps.Ready(), AssetsURL: AssetsPrefix}
	if data.Ready {
		meta, err := h.deps.Meta(r.Context())
		if err != nil {
			writeFailure(r.Context(), w, err)
			return
		}
		data.Meta = meta
		win, err := windowFrom(r.Context(), r, h.deps)
		if err != nil || win.Validate(meta.MaxMinute) != nil {
			win = model.FullWindow(meta.MaxMinute)
		}
		data.Window = win
	}
	if path := h.deps.VideoPath(); path != "" {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			data.HasVideo = true
		}
	}

	templ.Handler(templates.Dashboard(data)).ServeHTTP(w, r)
}
