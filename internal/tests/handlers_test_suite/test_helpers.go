package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/eventlog"
	api "github.com/rogerio-castellano/inventory-dashboard/internal/http"
	handler "github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/snapshot"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const lowStockThreshold = 10

type testEnv struct {
	router       http.Handler
	token        string
	productRepo  *repo.InMemoryProductRepository
	categoryRepo *repo.InMemoryCategoryRepository
	events       *eventlog.MemoryLog
}

// newTestEnv wires a server over in-memory repositories and a cached
// snapshot source, then logs in as admin.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	categoryRepo := repo.NewInMemoryCategoryRepository()
	productRepo := repo.NewInMemoryProductRepository(categoryRepo)
	userRepo := repo.NewInMemoryUserRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = userRepo.CreateUser(context.Background(), models.User{Username: "admin", PasswordHash: string(hash)})
	require.NoError(t, err)

	events := eventlog.NewMemoryLog(0)
	source := snapshot.NewCachedSource(
		snapshot.NewRepoSource(productRepo, categoryRepo),
		snapshot.NewMemoryCache(),
		snapshot.DefaultTTL,
		zap.NewNop(),
	)

	server := handler.NewServer(handler.Deps{
		Products:          productRepo,
		Categories:        categoryRepo,
		Users:             userRepo,
		Source:            source,
		Events:            events,
		Tokens:            auth.NewTokenIssuer("test-secret", 15*time.Minute),
		LowStockThreshold: lowStockThreshold,
		Logger:            zap.NewNop(),
	})

	env := &testEnv{
		router:       api.NewRouter(server, api.RouterOptions{}),
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		events:       events,
	}

	env.token, err = generateToken(env.router, "admin", "secret")
	require.NoError(t, err)
	return env
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := login(r, username, password)
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func login(r http.Handler, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.CredentialsRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (e *testEnv) do(method, path string, payload any, authorized bool) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}

	req := httptest.NewRequest(method, path, &body)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, nil, false)
}

func (e *testEnv) createCategory(t *testing.T, name string) handler.CategoryResponse {
	t.Helper()

	w := e.do(http.MethodPost, "/categories", handler.CategoryRequest{Name: name}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.CategoryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func (e *testEnv) createProduct(t *testing.T, p handler.ProductRequest) handler.ProductResponse {
	t.Helper()

	w := e.do(http.MethodPost, "/products", p, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.ProductResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// seedInventory creates two categories and four products:
// Cable 3 x 2.50, Stapler 12 x 8.00, USB Hub 7 x 19.99, Notebook 0 x 1.25.
func (e *testEnv) seedInventory(t *testing.T) (electronics, office handler.CategoryResponse) {
	t.Helper()

	electronics = e.createCategory(t, "Electronics")
	office = e.createCategory(t, "Office")

	e.createProduct(t, handler.ProductRequest{Name: "Cable", Quantity: 3, UnitPrice: price("2.50"), CategoryID: electronics.Id})
	e.createProduct(t, handler.ProductRequest{Name: "Stapler", Quantity: 12, UnitPrice: price("8.00"), CategoryID: office.Id})
	e.createProduct(t, handler.ProductRequest{Name: "USB Hub", Quantity: 7, UnitPrice: price("19.99"), CategoryID: electronics.Id})
	e.createProduct(t, handler.ProductRequest{Name: "Notebook", Quantity: 0, UnitPrice: price("1.25"), CategoryID: office.Id})
	return electronics, office
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
