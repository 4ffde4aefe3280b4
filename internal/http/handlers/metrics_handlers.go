package handlers

import (
	"bytes"
	"net/http"

	"github.com/rogerio-castellano/inventory-dashboard/internal/inventory"
	"github.com/rogerio-castellano/inventory-dashboard/internal/report"
	"github.com/rogerio-castellano/inventory-dashboard/internal/snapshot"
	"go.uber.org/zap"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics: stock value, counts, averages and chart series
// @Tags metrics
// @Produce json
// @Param threshold query int false "Low stock threshold"
// @Success 200 {object} inventory.Dashboard
// @Failure 400 {string} string "Invalid threshold"
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
func (s *Server) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboard(w, r)
	if !ok {
		return
	}

	s.respond(w, http.StatusOK, d)
}

// ExportDashboardHandler godoc
// @Summary Dashboard metrics as an Excel workbook
// @Tags metrics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param threshold query int false "Low stock threshold"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid threshold"
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard/export [get]
func (s *Server) ExportDashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboard(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, d); err != nil {
		s.logger.Error("failed to render dashboard workbook", zap.Error(err))
		http.Error(w, "failed to export metrics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="dashboard.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
	}
}

// dashboard builds the metrics for the requested threshold, writing an error
// response and returning false when it cannot.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) (inventory.Dashboard, bool) {
	threshold, ok := s.threshold(w, r)
	if !ok {
		return inventory.Dashboard{}, false
	}

	products, categories, err := snapshot.Fetch(r.Context(), s.source)
	if err != nil {
		s.logger.Error("failed to fetch metrics", zap.Error(err))
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return inventory.Dashboard{}, false
	}

	d := inventory.BuildDashboard(products, categories, threshold)
	if d.UnresolvedCount > 0 {
		s.logger.Warn("dashboard excludes products with missing categories",
			zap.Int("unresolved_count", d.UnresolvedCount))
	}
	return d, true
}

// GetValueByCategoryHandler godoc
// @Summary Stock value grouped by category name
// @Tags metrics
// @Produce json
// @Success 200 {object} ValueByCategoryResult
// @Failure 500 {string} string "Internal error"
// @Router /metrics/value-by-category [get]
func (s *Server) GetValueByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	items, err := s.enriched(r)
	if err != nil {
		s.logger.Error("failed to fetch metrics", zap.Error(err))
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}

	s.respond(w, http.StatusOK, ValueByCategoryResult{
		Data:  inventory.ValueByCategory(items),
		Total: inventory.TotalValue(items),
	})
}
