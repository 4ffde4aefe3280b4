package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu         sync.RWMutex
	products   []models.Product
	nextID     int
	categories *InMemoryCategoryRepository
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
// When categories is non-nil, Create rejects unknown category IDs and the
// category repository refuses to delete categories that are still referenced.
func NewInMemoryProductRepository(categories *InMemoryCategoryRepository) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products:   []models.Product{},
		nextID:     1,
		categories: categories,
	}
	if categories != nil {
		categories.inUse = r.references
	}
	return r
}

// Create adds a new product to the repository. The category lock is held
// until the product is stored; locks are always taken categories first.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	if r.categories != nil {
		r.categories.mu.RLock()
		defer r.categories.mu.RUnlock()
		if !r.categories.existsLocked(product.CategoryID) {
			return models.Product{}, ErrCategoryNotFound
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// Insert stores a product as is, without assigning an ID or checking its
// category. Useful for seeding snapshots that contain dangling references.
func (r *InMemoryProductRepository) Insert(product models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products = append(r.products, product)
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.products), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = slices.Delete(r.products, i, i+1)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) references(categoryID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.ContainsFunc(r.products, func(p models.Product) bool { return p.CategoryID == categoryID })
}
