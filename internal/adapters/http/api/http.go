// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/adapters/render"
	"github.com/okian/futvis/internal/domain/binning"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/internal/domain/types"
	"github.com/okian/futvis/pkg/logger"
	"github.com/okian/futvis/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetaProvider exposes the loaded dataset description.
type MetaProvider interface {
	Meta(ctx context.Context) (types.Meta, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the session service.
type Dependencies interface {
	MetaProvider

	// Read views over the active dataset.
	Occupancy(ctx context.Context) (types.Occupancy, error)
	Bins(ctx context.Context, mode binning.Mode, w model.TimeWindow) (types.Bins, error)
	Hull(ctx context.Context, w model.TimeWindow) (types.Hull, error)

	// Panel renders a chart; Placeholder renders its empty state.
	Panel(ctx context.Context, p types.Panel, w model.TimeWindow) (*render.Chart, error)
	Placeholder(p types.Panel, message string) *render.Chart

	// Reload swaps in a freshly loaded dataset.
	Reload(ctx context.Context) (types.Meta, error)

	VideoPath() string
	Ready() bool
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *DashboardHandler
	panelHandler     *PanelHandler
	dataHandler      *DataHandler
	videoHandler     *VideoHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: NewDashboardHandler(deps),
		panelHandler:     NewPanelHandler(deps),
		dataHandler:      NewDataHandler(deps),
		videoHandler:     NewVideoHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/{$}", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/panels/", MetricsMiddleware(s.panelHandler.HandlePanel, "panels"))
	mux.HandleFunc("/video", MetricsMiddleware(s.videoHandler.HandleVideo, "video"))

	mux.HandleFunc("/api/meta", MetricsMiddleware(s.dataHandler.HandleMeta, "meta"))
	mux.HandleFunc("/api/occupancy", MetricsMiddleware(s.dataHandler.HandleOccupancy, "occupancy"))
	mux.HandleFunc("/api/bins/", MetricsMiddleware(s.dataHandler.HandleBins, "bins"))
	mux.HandleFunc("/api/hull", MetricsMiddleware(s.dataHandler.HandleHull, "hull"))
	mux.HandleFunc("/api/reload", MetricsMiddleware(s.dataHandler.HandleReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigStd.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a domain error onto a status and error code.
func writeFailure(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, model.ErrEmptySelection):
		writeError(w, http.StatusNotFound, "empty_selection", err)
	case errors.Is(err, ErrUnknownPanel), errors.Is(err, binning.ErrUnknownMode):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	default:
		logger.Get().Error(ctx, "request failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
