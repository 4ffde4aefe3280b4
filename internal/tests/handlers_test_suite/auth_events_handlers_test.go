package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/inventory-dashboard/internal/eventlog"
	handler "github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		username string
		password string
		expected int
	}{
		{"Valid credentials", "admin", "secret", http.StatusOK},
		{"Wrong password", "admin", "wrong", http.StatusUnauthorized},
		{"Unknown user", "ghost", "secret", http.StatusUnauthorized},
		{"Missing password", "admin", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := login(env.router, tt.username, tt.password)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestLoginHandler_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":`))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEventsHandler(t *testing.T) {
	env := newTestEnv(t)
	cat := env.createCategory(t, "Electronics")
	p := env.createProduct(t, handler.ProductRequest{Name: "Cable", Quantity: 3, UnitPrice: price("2.50"), CategoryID: cat.Id})
	require.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, fmt.Sprintf("/products/%d", p.Id), nil, true).Code)

	// Failed writes are not recorded.
	require.Equal(t, http.StatusConflict, env.do(http.MethodPost, "/categories", handler.CategoryRequest{Name: "Electronics"}, true).Code)

	w := env.do(http.MethodGet, "/events", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.EventsResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 3, resp.Meta.TotalCount)
	require.Len(t, resp.Data, 3)

	deleted := resp.Data[0]
	assert.Equal(t, eventlog.ActionDelete, deleted.Action)
	assert.Equal(t, eventlog.EntityProduct, deleted.Entity)
	assert.Equal(t, p.Id, deleted.EntityID)
	assert.Equal(t, "Cable", deleted.Name)
	assert.Equal(t, "admin", deleted.Actor)

	assert.Equal(t, eventlog.ActionCreate, resp.Data[1].Action)
	assert.Equal(t, eventlog.EntityProduct, resp.Data[1].Entity)
	assert.Equal(t, eventlog.EntityCategory, resp.Data[2].Entity)
	assert.Equal(t, "Electronics", resp.Data[2].Name)
}

func TestGetEventsHandler_Limit(t *testing.T) {
	env := newTestEnv(t)
	env.seedInventory(t)

	w := env.do(http.MethodGet, "/events?limit=2", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.EventsResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Notebook", resp.Data[0].Name)
	assert.Equal(t, "USB Hub", resp.Data[1].Name)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/events?limit=0", nil, true).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/events?limit=x", nil, true).Code)
}

func TestGetEventsHandler_RequiresToken(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusUnauthorized, env.get("/events").Code)
}
