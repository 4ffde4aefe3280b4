package snapshot

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSource struct {
	mu            sync.Mutex
	productCalls  atomic.Int32
	categoryCalls atomic.Int32
	products      []models.Product
	categories    []models.Category
	err           error
	gate          chan struct{}
}

// Products reads the rows before waiting on gate, like a query that has
// already run but not yet returned.
func (s *countingSource) Products(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	rows, err, gate := s.products, s.err, s.gate
	s.mu.Unlock()

	s.productCalls.Add(1)
	if gate != nil {
		<-gate
	}
	return rows, err
}

func (s *countingSource) setGate(gate chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = gate
}

func (s *countingSource) addProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(slices.Clone(s.products), p)
}

func (s *countingSource) Categories(ctx context.Context) ([]models.Category, error) {
	s.categoryCalls.Add(1)
	return s.categories, s.err
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("connection refused")
}
func (brokenCache) Set(context.Context, string, any, time.Duration) error {
	return errors.New("connection refused")
}
func (brokenCache) Delete(context.Context, ...string) error { return errors.New("connection refused") }

func newSource() *countingSource {
	return &countingSource{
		products: []models.Product{
			{ID: 1, Name: "Cable", Quantity: 3, UnitPrice: decimal.RequireFromString("2.50"), CategoryID: 1},
		},
		categories: []models.Category{{ID: 1, Name: "Electronics"}},
	}
}

func TestClampTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, ClampTTL(0))
	assert.Equal(t, MinTTL, ClampTTL(time.Second))
	assert.Equal(t, MaxTTL, ClampTTL(time.Hour))
	assert.Equal(t, 45*time.Second, ClampTTL(45*time.Second))
}

func TestCachedSource_ServesFromCacheWithinTTL(t *testing.T) {
	ctx := context.Background()
	src := newSource()
	cache := NewMemoryCache()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cached := NewCachedSource(src, cache, 30*time.Second, zap.NewNop())

	for range 3 {
		products, err := cached.Products(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.True(t, products[0].UnitPrice.Equal(decimal.RequireFromString("2.50")))
	}
	assert.EqualValues(t, 1, src.productCalls.Load())

	now = now.Add(31 * time.Second)
	_, err := cached.Products(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.productCalls.Load())
}

func TestCachedSource_Invalidate(t *testing.T) {
	ctx := context.Background()
	src := newSource()
	cached := NewCachedSource(src, NewMemoryCache(), time.Minute, nil)

	_, _, err := Fetch(ctx, cached)
	require.NoError(t, err)
	_, _, err = Fetch(ctx, cached)
	require.NoError(t, err)
	assert.EqualValues(t, 1, src.productCalls.Load())
	assert.EqualValues(t, 1, src.categoryCalls.Load())

	cached.Invalidate(ctx)

	_, _, err = Fetch(ctx, cached)
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.productCalls.Load())
	assert.EqualValues(t, 2, src.categoryCalls.Load())
}

func TestCachedSource_InvalidateDuringFetch(t *testing.T) {
	ctx := context.Background()
	src := newSource()
	gate := make(chan struct{})
	src.setGate(gate)
	cached := NewCachedSource(src, NewMemoryCache(), time.Minute, nil)

	done := make(chan []models.Product)
	go func() {
		products, err := cached.Products(ctx)
		assert.NoError(t, err)
		done <- products
	}()

	// The read above has its rows; a write lands before it returns.
	require.Eventually(t, func() bool { return src.productCalls.Load() == 1 }, time.Second, time.Millisecond)
	src.addProduct(models.Product{ID: 2, Name: "Stapler", Quantity: 12, UnitPrice: decimal.RequireFromString("8"), CategoryID: 1})
	cached.Invalidate(ctx)
	src.setGate(nil)

	// A reader arriving after the write must not join the old fetch.
	fresh, err := cached.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	close(gate)
	assert.Len(t, <-done, 1)

	products, err := cached.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2, "rows read before the write were cached")
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	src := newSource()
	src.err = errors.New("store down")
	cached := NewCachedSource(src, NewMemoryCache(), time.Minute, nil)

	_, err := cached.Categories(ctx)
	require.Error(t, err)

	src.err = nil
	categories, err := cached.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	assert.EqualValues(t, 2, src.categoryCalls.Load())
}

func TestCachedSource_BrokenCacheFallsBack(t *testing.T) {
	ctx := context.Background()
	src := newSource()
	cached := NewCachedSource(src, brokenCache{}, time.Minute, zap.NewNop())

	products, err := cached.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	cached.Invalidate(ctx)
}

func TestCachedSource_CollapsesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	src := newSource()
	src.gate = make(chan struct{})
	cached := NewCachedSource(src, NewMemoryCache(), time.Minute, nil)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			products, err := cached.Products(ctx)
			assert.NoError(t, err)
			assert.Len(t, products, 1)
		}()
	}

	require.Eventually(t, func() bool { return src.productCalls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.EqualValues(t, 1, src.productCalls.Load())
}

func TestRepoSource(t *testing.T) {
	ctx := context.Background()
	categories := repo.NewInMemoryCategoryRepository()
	products := repo.NewInMemoryProductRepository(categories)

	cat, err := categories.Create(ctx, models.Category{Name: "Electronics"})
	require.NoError(t, err)
	_, err = products.Create(ctx, models.Product{Name: "Cable", CategoryID: cat.ID})
	require.NoError(t, err)

	gotProducts, gotCategories, err := Fetch(ctx, NewRepoSource(products, categories))
	require.NoError(t, err)
	assert.Len(t, gotProducts, 1)
	assert.Len(t, gotCategories, 1)
}
