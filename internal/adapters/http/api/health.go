package api

import (
	"net/http"

	"github.com/okian/futvis/internal/domain/types"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /healthz requests. It reports 503 until a dataset
// is loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.deps.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, types.Health{Status: "loading"})
		return
	}
	health := types.Health{Status: "ok"}
	if meta, err := h.deps.Meta(r.Context()); err == nil {
		health.DatasetID = meta.DatasetID
	}
	writeJSON(w, http.StatusOK, health)
}
