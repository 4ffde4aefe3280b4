package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-dashboard/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []inventory.EnrichedProduct) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestGetInventoryHandler_JoinsCategories(t *testing.T) {
	env := newTestEnv(t)
	env.seedInventory(t)

	w := env.get("/inventory")
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.InventoryResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 4, resp.Meta.TotalCount)
	assert.Equal(t, []string{"Cable", "Stapler", "USB Hub", "Notebook"}, names(resp.Data))

	hub := resp.Data[2]
	assert.Equal(t, "Electronics", hub.CategoryName)
	assert.True(t, hub.TotalValue.Equal(price("139.93")), "got %s", hub.TotalValue)
}

func TestGetInventoryHandler_Filter(t *testing.T) {
	env := newTestEnv(t)
	env.seedInventory(t)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"No query", "", []string{"Cable", "Stapler", "USB Hub", "Notebook"}},
		{"Case insensitive by default", "?q=usb", []string{"USB Hub"}},
		{"Case sensitive", "?q=usb&case_sensitive=true", []string{}},
		{"Substring", "?q=le", []string{"Cable", "Stapler"}},
		{"Category ignored by default", "?q=office", []string{}},
		{"Category match", "?q=office&match_category=true", []string{"Stapler", "Notebook"}},
		{"No match", "?q=zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.get("/inventory" + tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var resp handler.InventoryResult
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expected, names(resp.Data))
			assert.Equal(t, len(tt.expected), resp.Meta.TotalCount)
		})
	}
}

func TestGetInventoryHandler_InvalidFlags(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusBadRequest, env.get("/inventory?case_sensitive=maybe").Code)
	assert.Equal(t, http.StatusBadRequest, env.get("/inventory?match_category=2").Code)
}

func TestGetInventoryHandler_EmptyInventory(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/inventory")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"meta":{"total_count":0}}`, w.Body.String())
}

func TestGetLowStockHandler(t *testing.T) {
	env := newTestEnv(t)
	env.seedInventory(t)

	tests := []struct {
		name      string
		query     string
		threshold int
		expected  []string
	}{
		{"Default threshold", "", lowStockThreshold, []string{"Cable", "USB Hub", "Notebook"}},
		{"Explicit threshold", "?threshold=5", 5, []string{"Cable", "Notebook"}},
		{"Strictly below", "?threshold=3", 3, []string{"Notebook"}},
		{"Zero threshold", "?threshold=0", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.get("/inventory/low-stock" + tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var resp handler.LowStockResult
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.threshold, resp.Threshold)
			assert.Equal(t, tt.expected, names(resp.Data))
			assert.Equal(t, len(tt.expected), resp.Meta.TotalCount)
		})
	}
}

func TestGetLowStockHandler_InvalidThreshold(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/inventory/low-stock?threshold=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid threshold format\n", w.Body.String())

	w = env.get("/inventory/low-stock?threshold=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
