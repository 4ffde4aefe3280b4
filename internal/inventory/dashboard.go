package inventory

import (
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// Dashboard holds every figure rendered on the analytics page.
type Dashboard struct {
	TotalValue        decimal.Decimal            `json:"total_value"`
	ProductCount      int                        `json:"product_count"`
	AveragePrice      decimal.Decimal            `json:"average_price"`
	LowStockThreshold int                        `json:"low_stock_threshold"`
	LowStock          []EnrichedProduct          `json:"low_stock"`
	ValueByCategory   map[string]decimal.Decimal `json:"value_by_category"`
	QuantityByProduct []ProductQuantity          `json:"quantity_by_product"`
	UnresolvedCount   int                        `json:"unresolved_count"`
}

// BuildDashboard joins the snapshot once and derives all dashboard metrics from it.
// Products referencing a missing category are excluded from every figure and
// counted in UnresolvedCount.
func BuildDashboard(products []models.Product, categories []models.Category, threshold int) Dashboard {
	items := Join(products, categories)

	return Dashboard{
		TotalValue:        TotalValue(items),
		ProductCount:      len(items),
		AveragePrice:      AveragePrice(items),
		LowStockThreshold: threshold,
		LowStock:          LowStockAlerts(items, threshold),
		ValueByCategory:   ValueByCategory(items),
		QuantityByProduct: QuantityByProduct(items),
		UnresolvedCount:   len(products) - len(items),
	}
}
