package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/pmanalytics/internal/dashboard"
	"github.com/wonny/pmanalytics/pkg/logger"
)

// DashboardHandler serves the precomputed dashboard snapshot
// ⭐ SSOT: 요청 시 재계산 없음, Snapshot 읽기만
type DashboardHandler struct {
	snap   *dashboard.Snapshot
	logger *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(snap *dashboard.Snapshot, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		snap:   snap,
		logger: log,
	}
}

// GetDashboard returns the KPI summary and all breakdowns
// GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snap.Dashboard())
}

// GetBreakdown returns a single breakdown table
// GET /api/breakdowns/{dimension}
func (h *DashboardHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	d := h.snap.Dashboard()

	switch mux.Vars(r)["dimension"] {
	case "strategy":
		respondJSON(w, http.StatusOK, d.ByStrategy)
	case "vintage":
		respondJSON(w, http.StatusOK, d.ByVintage)
	case "geography":
		respondJSON(w, http.StatusOK, d.ByGeography)
	case "strategy-geography":
		respondJSON(w, http.StatusOK, d.ByStrategyGeography)
	default:
		respondError(w, http.StatusNotFound, "Unknown dimension (must be 'strategy', 'vintage', 'geography' or 'strategy-geography')")
	}
}

// GetCharts returns the chart geometry
// GET /api/charts
func (h *DashboardHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snap.Charts())
}

// GetChartSVG returns one rendered chart
// GET /api/charts/{name}.svg
func (h *DashboardHandler) GetChartSVG(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	svg, ok := h.snap.SVG(name)
	if !ok {
		h.logger.WithField("chart", name).Debug("Unknown chart requested")
		respondError(w, http.StatusNotFound, "Chart not found")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}

// GetMeta returns dataset provenance
// GET /api/meta
func (h *DashboardHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_hash":   h.snap.DatasetHash(),
		"dataset_source": h.snap.DatasetSource(),
		"built_at":       h.snap.BuiltAt(),
		"charts":         h.snap.ChartNames(),
		"strategies":     h.snap.Strategies(),
	})
}
