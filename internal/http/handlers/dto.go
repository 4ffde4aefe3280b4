package handlers

import (
	"github.com/rogerio-castellano/inventory-dashboard/internal/eventlog"
	"github.com/rogerio-castellano/inventory-dashboard/internal/inventory"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CategoryID int             `json:"category_id"`
}

type ProductResponse struct {
	Id         int             `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CategoryID int             `json:"category_id"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type InventoryResult struct {
	Data []inventory.EnrichedProduct `json:"data"`
	Meta Meta                        `json:"meta"`
}

type LowStockResult struct {
	Threshold int                         `json:"threshold"`
	Data      []inventory.EnrichedProduct `json:"data"`
	Meta      Meta                        `json:"meta"`
}

type ValueByCategoryResult struct {
	Data  map[string]decimal.Decimal `json:"data"`
	Total decimal.Decimal            `json:"total"`
}

type EventsResult struct {
	Data []eventlog.Event `json:"data"`
	Meta Meta             `json:"meta"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}
