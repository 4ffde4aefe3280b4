package handlers

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds of the products columns: quantity INTEGER, unit_price NUMERIC(12, 2).
const (
	maxQuantity       = math.MaxInt32
	unitPriceDecimals = 2
)

var maxUnitPrice = decimal.New(1, 10)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	switch {
	case p.Quantity < 0:
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	case p.Quantity > maxQuantity:
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity is too large"})
	}
	switch {
	case p.UnitPrice.IsNegative():
		errs = append(errs, ValidationError{Field: "UnitPrice", Description: "Unit price cannot be negative"})
	case p.UnitPrice.GreaterThanOrEqual(maxUnitPrice):
		errs = append(errs, ValidationError{Field: "UnitPrice", Description: "Unit price is too large"})
	case !p.UnitPrice.Equal(p.UnitPrice.Truncate(unitPriceDecimals)):
		errs = append(errs, ValidationError{Field: "UnitPrice", Description: "Unit price cannot have more than 2 decimal places"})
	}
	if p.CategoryID <= 0 {
		errs = append(errs, ValidationError{Field: "CategoryID", Description: "Category is required"})
	}
	return errs
}

func validateCategory(c CategoryRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	return errs
}
