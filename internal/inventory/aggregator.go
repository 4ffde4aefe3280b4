// Package inventory joins product and category snapshots and computes the
// figures shown on the inventory dashboard. Every function is pure: inputs
// are never mutated and results depend only on the arguments.
package inventory

import (
	"strings"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// EnrichedProduct is a product joined with its category name plus its stock value.
type EnrichedProduct struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// ProductQuantity is one bar of the stock-by-product chart.
type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Join performs an inner join of products to categories on CategoryID.
// Products whose category is missing from the snapshot are left out; use
// Unresolved to find them. Output order follows the input products.
func Join(products []models.Product, categories []models.Category) []EnrichedProduct {
	names := categoryNames(categories)

	items := make([]EnrichedProduct, 0, len(products))
	for _, p := range products {
		name, ok := names[p.CategoryID]
		if !ok {
			continue
		}
		items = append(items, EnrichedProduct{
			ID:           p.ID,
			Name:         p.Name,
			Quantity:     p.Quantity,
			UnitPrice:    p.UnitPrice,
			CategoryID:   p.CategoryID,
			CategoryName: name,
			TotalValue:   p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))),
		})
	}
	return items
}

// Unresolved returns the products Join drops because their category is not in the snapshot.
func Unresolved(products []models.Product, categories []models.Category) []models.Product {
	names := categoryNames(categories)

	var orphans []models.Product
	for _, p := range products {
		if _, ok := names[p.CategoryID]; !ok {
			orphans = append(orphans, p)
		}
	}
	return orphans
}

func categoryNames(categories []models.Category) map[int]string {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

// TotalValue sums UnitPrice*Quantity over items.
func TotalValue(items []EnrichedProduct) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// AveragePrice is the mean unit price of items, zero when there are none.
func AveragePrice(items []EnrichedProduct) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.UnitPrice)
	}
	return sum.Div(decimal.NewFromInt(int64(len(items))))
}

// LowStockAlerts returns the items whose quantity is strictly below threshold.
func LowStockAlerts(items []EnrichedProduct, threshold int) []EnrichedProduct {
	alerts := []EnrichedProduct{}
	for _, it := range items {
		if it.Quantity < threshold {
			alerts = append(alerts, it)
		}
	}
	return alerts
}

// ValueByCategory sums TotalValue per category name. Categories without
// products do not appear in the result.
func ValueByCategory(items []EnrichedProduct) map[string]decimal.Decimal {
	groups := make(map[string]decimal.Decimal)
	for _, it := range items {
		groups[it.CategoryName] = groups[it.CategoryName].Add(it.TotalValue)
	}
	return groups
}

// QuantityByProduct lists name/quantity pairs in item order.
func QuantityByProduct(items []EnrichedProduct) []ProductQuantity {
	series := make([]ProductQuantity, len(items))
	for i, it := range items {
		series[i] = ProductQuantity{Name: it.Name, Quantity: it.Quantity}
	}
	return series
}

type filterOptions struct {
	caseSensitive bool
	matchCategory bool
}

// FilterOption tunes FilterByName.
type FilterOption func(*filterOptions)

// CaseSensitive disables the default case-insensitive comparison.
func CaseSensitive() FilterOption {
	return func(o *filterOptions) { o.caseSensitive = true }
}

// MatchCategory makes the query also match against the category name.
func MatchCategory() FilterOption {
	return func(o *filterOptions) { o.matchCategory = true }
}

// FilterByName keeps the items whose name contains query. An empty query
// returns items unchanged.
func FilterByName(items []EnrichedProduct, query string, opts ...FilterOption) []EnrichedProduct {
	if query == "" {
		return items
	}

	var o filterOptions
	for _, opt := range opts {
		opt(&o)
	}

	normalize := func(s string) string { return s }
	if !o.caseSensitive {
		normalize = strings.ToLower
	}
	needle := normalize(query)

	matched := []EnrichedProduct{}
	for _, it := range items {
		if strings.Contains(normalize(it.Name), needle) ||
			(o.matchCategory && strings.Contains(normalize(it.CategoryName), needle)) {
			matched = append(matched, it)
		}
	}
	return matched
}
