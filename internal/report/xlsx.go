// Package report renders a dashboard as an Excel workbook.
package report

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/rogerio-castellano/inventory-dashboard/internal/inventory"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet           = "Summary"
	ValueByCategorySheet   = "Value by category"
	QuantityByProductSheet = "Quantity by product"
	LowStockSheet          = "Low stock"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteXLSX writes d as a workbook with one sheet per dashboard panel.
func WriteXLSX(w io.Writer, d inventory.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	summary := [][]any{
		{"Metric", "Value"},
		{"Total value", d.TotalValue.InexactFloat64()},
		{"Product count", d.ProductCount},
		{"Average price", d.AveragePrice.InexactFloat64()},
		{"Low stock threshold", d.LowStockThreshold},
		{"Unresolved products", d.UnresolvedCount},
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		return err
	}

	byCategory := [][]any{{"Category", "Value"}}
	for _, name := range slices.Sorted(maps.Keys(d.ValueByCategory)) {
		byCategory = append(byCategory, []any{name, d.ValueByCategory[name].InexactFloat64()})
	}
	if err := writeSheet(f, ValueByCategorySheet, byCategory); err != nil {
		return err
	}

	quantities := [][]any{{"Product", "Quantity"}}
	for _, q := range d.QuantityByProduct {
		quantities = append(quantities, []any{q.Name, q.Quantity})
	}
	if err := writeSheet(f, QuantityByProductSheet, quantities); err != nil {
		return err
	}

	lowStock := [][]any{{"ID", "Name", "Category", "Quantity", "Unit price", "Total value"}}
	for _, p := range d.LowStock {
		lowStock = append(lowStock, []any{
			p.ID, p.Name, p.CategoryName, p.Quantity,
			p.UnitPrice.InexactFloat64(), p.TotalValue.InexactFloat64(),
		})
	}
	if err := writeSheet(f, LowStockSheet, lowStock); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", sheet, err)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
