package inventory

import (
	"testing"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleSnapshot() ([]models.Product, []models.Category) {
	categories := []models.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Office", Description: "Paper and pens"},
		{ID: 3, Name: "Garden"},
	}
	products := []models.Product{
		{ID: 10, Name: "Cable", Quantity: 3, UnitPrice: dec("2.50"), CategoryID: 1},
		{ID: 11, Name: "Stapler", Quantity: 12, UnitPrice: dec("8.00"), CategoryID: 2},
		{ID: 12, Name: "USB Hub", Quantity: 7, UnitPrice: dec("19.99"), CategoryID: 1},
		{ID: 13, Name: "Orphan", Quantity: 1, UnitPrice: dec("9.99"), CategoryID: 99},
		{ID: 14, Name: "Notebook", Quantity: 0, UnitPrice: dec("1.25"), CategoryID: 2},
	}
	return products, categories
}

func TestJoin_ExcludesMissingCategory(t *testing.T) {
	categories := []models.Category{{ID: 1, Name: "Electronics"}}
	products := []models.Product{
		{ID: 10, Name: "Cable", Quantity: 3, UnitPrice: dec("2.50"), CategoryID: 1},
		{ID: 11, Name: "Orphan", Quantity: 1, UnitPrice: dec("9.99"), CategoryID: 99},
	}

	items := Join(products, categories)

	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].ID)
	assert.Equal(t, "Electronics", items[0].CategoryName)
	assert.True(t, items[0].TotalValue.Equal(dec("7.50")), "total value = %s", items[0].TotalValue)
	assert.True(t, TotalValue(items).Equal(dec("7.50")))
}

func TestJoin_PreservesOrderAndResolvesCategories(t *testing.T) {
	products, categories := sampleSnapshot()

	items := Join(products, categories)

	require.LessOrEqual(t, len(items), len(products))
	gotIDs := make([]int, len(items))
	for i, it := range items {
		gotIDs[i] = it.ID
		found := false
		for _, c := range categories {
			if c.ID == it.CategoryID && c.Name == it.CategoryName {
				found = true
			}
		}
		assert.True(t, found, "product %d has no matching category", it.ID)
	}
	assert.Equal(t, []int{10, 11, 12, 14}, gotIDs)
}

func TestJoin_EmptyInputs(t *testing.T) {
	assert.Empty(t, Join(nil, []models.Category{{ID: 1, Name: "Electronics"}}))
	assert.Empty(t, Join([]models.Product{{ID: 1, Name: "Cable", CategoryID: 1}}, nil))
	assert.Empty(t, ValueByCategory(Join(nil, []models.Category{{ID: 1, Name: "Electronics"}})))
}

func TestUnresolved(t *testing.T) {
	products, categories := sampleSnapshot()

	orphans := Unresolved(products, categories)

	require.Len(t, orphans, 1)
	assert.Equal(t, 13, orphans[0].ID)
}

func TestTotalValue(t *testing.T) {
	assert.True(t, TotalValue(nil).IsZero())

	products, categories := sampleSnapshot()
	want := decimal.Zero
	names := map[int]bool{}
	for _, c := range categories {
		names[c.ID] = true
	}
	for _, p := range products {
		if names[p.CategoryID] {
			want = want.Add(p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
		}
	}

	got := TotalValue(Join(products, categories))
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
	assert.True(t, got.Equal(dec("243.43")), "got %s", got)
}

func TestAveragePrice(t *testing.T) {
	assert.True(t, AveragePrice(nil).IsZero())

	items := Join(sampleSnapshot())
	// (2.50 + 8.00 + 19.99 + 1.25) / 4
	assert.True(t, AveragePrice(items).Equal(dec("7.935")), "got %s", AveragePrice(items))
}

func TestLowStockAlerts(t *testing.T) {
	items := Join(sampleSnapshot())

	tests := []struct {
		threshold int
		wantIDs   []int
	}{
		{threshold: 0, wantIDs: []int{}},
		{threshold: 5, wantIDs: []int{10, 14}},
		{threshold: 10, wantIDs: []int{10, 12, 14}},
		{threshold: 13, wantIDs: []int{10, 11, 12, 14}},
	}

	for _, tt := range tests {
		alerts := LowStockAlerts(items, tt.threshold)
		gotIDs := []int{}
		for _, a := range alerts {
			assert.Less(t, a.Quantity, tt.threshold)
			gotIDs = append(gotIDs, a.ID)
		}
		assert.Equal(t, tt.wantIDs, gotIDs, "threshold %d", tt.threshold)
	}
}

func TestValueByCategory(t *testing.T) {
	items := Join(sampleSnapshot())

	groups := ValueByCategory(items)

	require.Len(t, groups, 2)
	assert.NotContains(t, groups, "Garden")
	assert.True(t, groups["Electronics"].Equal(dec("147.43")), "got %s", groups["Electronics"])
	assert.True(t, groups["Office"].Equal(dec("96")), "got %s", groups["Office"])

	sum := decimal.Zero
	for _, v := range groups {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(TotalValue(items)))
}

func TestQuantityByProduct(t *testing.T) {
	items := Join(sampleSnapshot())

	assert.Equal(t, []ProductQuantity{
		{Name: "Cable", Quantity: 3},
		{Name: "Stapler", Quantity: 12},
		{Name: "USB Hub", Quantity: 7},
		{Name: "Notebook", Quantity: 0},
	}, QuantityByProduct(items))
}

func TestFilterByName(t *testing.T) {
	items := Join(sampleSnapshot())

	ids := func(items []EnrichedProduct) []int {
		out := []int{}
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	tests := []struct {
		name    string
		query   string
		opts    []FilterOption
		wantIDs []int
	}{
		{name: "empty query", query: "", wantIDs: []int{10, 11, 12, 14}},
		{name: "case insensitive by default", query: "usb", wantIDs: []int{12}},
		{name: "case sensitive miss", query: "usb", opts: []FilterOption{CaseSensitive()}, wantIDs: []int{}},
		{name: "case sensitive hit", query: "USB", opts: []FilterOption{CaseSensitive()}, wantIDs: []int{12}},
		{name: "category ignored by default", query: "office", wantIDs: []int{}},
		{name: "category match", query: "office", opts: []FilterOption{MatchCategory()}, wantIDs: []int{11, 14}},
		{name: "substring", query: "e", wantIDs: []int{10, 11, 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIDs, ids(FilterByName(items, tt.query, tt.opts...)))
		})
	}
}

func TestFilterByName_EmptyQueryReturnsInput(t *testing.T) {
	items := Join(sampleSnapshot())
	assert.Equal(t, items, FilterByName(items, ""))
}

func TestBuildDashboard(t *testing.T) {
	products, categories := sampleSnapshot()

	d := BuildDashboard(products, categories, 5)

	assert.True(t, d.TotalValue.Equal(dec("243.43")))
	assert.Equal(t, 4, d.ProductCount)
	assert.Equal(t, 5, d.LowStockThreshold)
	assert.Len(t, d.LowStock, 2)
	assert.Len(t, d.ValueByCategory, 2)
	assert.Len(t, d.QuantityByProduct, 4)
	assert.Equal(t, 1, d.UnresolvedCount)
}

func TestBuildDashboard_EmptySnapshot(t *testing.T) {
	d := BuildDashboard(nil, []models.Category{{ID: 1, Name: "Electronics"}}, 10)

	assert.True(t, d.TotalValue.IsZero())
	assert.True(t, d.AveragePrice.IsZero())
	assert.Zero(t, d.ProductCount)
	assert.Empty(t, d.LowStock)
	assert.Empty(t, d.ValueByCategory)
	assert.Zero(t, d.UnresolvedCount)
}
