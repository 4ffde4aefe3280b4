package models

import "github.com/shopspring/decimal"

// Product represents a product entity in the inventory system.
type Product struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CategoryID int             `json:"category_id"`
}
