package api

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/binning"
	"github.com/okian/futvis/pkg/logger"
)

// DataHandler serves the JSON views of the active dataset.
type DataHandler struct {
	deps Dependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps Dependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

// ready rejects the request when no dataset is loaded.
func (h *DataHandler) ready(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return false
	}
	if !h.deps.Ready() {
		writeFailure(r.Context(), w, ErrNotReady)
		return false
	}
	return true
}

// HandleMeta handles GET /api/meta requests.
func (h *DataHandler) HandleMeta(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r, http.MethodGet) {
		return
	}
	meta, err := h.deps.Meta(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// HandleOccupancy handles GET /api/occupancy requests.
func (h *DataHandler) HandleOccupancy(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r, http.MethodGet) {
		return
	}
	occ, err := h.deps.Occupancy(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, occ)
}

// HandleBins handles GET /api/bins/{mode}?start=&end= requests.
func (h *DataHandler) HandleBins(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r, http.MethodGet) {
		return
	}
	segment := strings.TrimPrefix(r.URL.Path, "/api/bins/")
	if segment == "" || strings.Contains(segment, "/") {
		writeError(w, http.StatusNotFound, "not_found", errors.Wrap(binning.ErrUnknownMode, "missing mode"))
		return
	}
	mode, err := binning.ParseMode(segment)
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	win, err := windowFrom(r.Context(), r, h.deps)
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	bins, err := h.deps.Bins(r.Context(), mode, win)
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, bins)
}

// HandleHull handles GET /api/hull?start=&second= requests.
func (h *DataHandler) HandleHull(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r, http.MethodGet) {
		return
	}
	win, err := windowFrom(r.Context(), r, h.deps)
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	hull, err := h.deps.Hull(r.Context(), win)
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, hull)
}

// HandleReload handles POST /api/reload requests.
func (h *DataHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r, http.MethodPost) {
		return
	}
	meta, err := h.deps.Reload(r.Context())
	if err != nil {
		logger.Get().Warn(r.Context(), "reload rejected", logger.Error(err))
		writeFailure(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}
