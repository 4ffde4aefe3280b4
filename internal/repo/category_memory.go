package repo

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// InMemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type InMemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []models.Category
	nextID     int

	// inUse reports whether any product references the category. Set by
	// NewInMemoryProductRepository.
	inUse func(categoryID int) bool
}

// NewInMemoryCategoryRepository creates a new instance of InMemoryCategoryRepository.
func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: []models.Category{},
		nextID:     1,
	}
}

// Create adds a new category. Names are compared case-insensitively for uniqueness.
func (r *InMemoryCategoryRepository) Create(_ context.Context, category models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return models.Category{}, ErrDuplicatedValueUnique
		}
	}

	category.ID = r.nextID
	r.nextID++
	r.categories = append(r.categories, category)
	return category, nil
}

// GetAll returns a copy of every category ordered by ID.
func (r *InMemoryCategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.categories), nil
}

func (r *InMemoryCategoryRepository) GetByID(_ context.Context, id int) (models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

// Delete removes a category unless a product still references it. The
// reference check runs under the write lock so a concurrent product Create
// cannot slip in between.
func (r *InMemoryCategoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inUse != nil && r.inUse(id) {
		return ErrCategoryInUse
	}

	for i, c := range r.categories {
		if c.ID == id {
			r.categories = slices.Delete(r.categories, i, i+1)
			return nil
		}
	}
	return ErrCategoryNotFound
}

// existsLocked reports whether id is stored. The caller holds r.mu.
func (r *InMemoryCategoryRepository) existsLocked(id int) bool {
	return slices.ContainsFunc(r.categories, func(c models.Category) bool { return c.ID == id })
}
