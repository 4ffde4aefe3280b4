package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/inventory-dashboard/internal/inventory"
	"github.com/rogerio-castellano/inventory-dashboard/internal/snapshot"
	"go.uber.org/zap"
)

// enriched fetches a fresh snapshot and joins it. Products pointing at a
// missing category are logged, then left out.
func (s *Server) enriched(r *http.Request) ([]inventory.EnrichedProduct, error) {
	products, categories, err := snapshot.Fetch(r.Context(), s.source)
	if err != nil {
		return nil, err
	}

	if orphans := inventory.Unresolved(products, categories); len(orphans) > 0 {
		ids := make([]int, len(orphans))
		for i, p := range orphans {
			ids[i] = p.ID
		}
		s.logger.Warn("products reference missing categories", zap.Ints("product_ids", ids))
	}
	return inventory.Join(products, categories), nil
}

// GetInventoryHandler godoc
// @Summary List products joined with their category and stock value
// @Tags inventory
// @Produce json
// @Param q query string false "Substring of the product name"
// @Param case_sensitive query bool false "Match case exactly"
// @Param match_category query bool false "Also match the category name"
// @Success 200 {object} InventoryResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /inventory [get]
func (s *Server) GetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	caseSensitive, err := queryBool(r, "case_sensitive")
	if err != nil {
		http.Error(w, "invalid case_sensitive value", http.StatusBadRequest)
		return
	}
	matchCategory, err := queryBool(r, "match_category")
	if err != nil {
		http.Error(w, "invalid match_category value", http.StatusBadRequest)
		return
	}

	items, err := s.enriched(r)
	if err != nil {
		s.logger.Error("could not fetch inventory", zap.Error(err))
		http.Error(w, "could not fetch inventory", http.StatusInternalServerError)
		return
	}

	var opts []inventory.FilterOption
	if caseSensitive {
		opts = append(opts, inventory.CaseSensitive())
	}
	if matchCategory {
		opts = append(opts, inventory.MatchCategory())
	}
	items = inventory.FilterByName(items, r.URL.Query().Get("q"), opts...)

	s.respond(w, http.StatusOK, InventoryResult{
		Data: items,
		Meta: Meta{TotalCount: len(items)},
	})
}

// GetLowStockHandler godoc
// @Summary Products whose quantity is below a threshold
// @Tags inventory
// @Produce json
// @Param threshold query int false "Alert when quantity is strictly below this value"
// @Success 200 {object} LowStockResult
// @Failure 400 {string} string "Invalid threshold"
// @Failure 500 {string} string "Internal error"
// @Router /inventory/low-stock [get]
func (s *Server) GetLowStockHandler(w http.ResponseWriter, r *http.Request) {
	threshold, ok := s.threshold(w, r)
	if !ok {
		return
	}

	items, err := s.enriched(r)
	if err != nil {
		s.logger.Error("could not fetch inventory", zap.Error(err))
		http.Error(w, "could not fetch inventory", http.StatusInternalServerError)
		return
	}

	alerts := inventory.LowStockAlerts(items, threshold)
	s.respond(w, http.StatusOK, LowStockResult{
		Threshold: threshold,
		Data:      alerts,
		Meta:      Meta{TotalCount: len(alerts)},
	})
}

// threshold reads the optional threshold parameter, writing a 400 when it is invalid.
func (s *Server) threshold(w http.ResponseWriter, r *http.Request) (int, bool) {
	threshold, err := queryInt(r, "threshold", s.lowStockThreshold)
	if err != nil {
		http.Error(w, "invalid threshold format", http.StatusBadRequest)
		return 0, false
	}
	if threshold < 0 {
		http.Error(w, "threshold must be zero or positive", http.StatusBadRequest)
		return 0, false
	}
	return threshold, true
}
