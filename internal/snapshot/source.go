// Package snapshot fetches product and category snapshots from the store,
// optionally through a short-lived read-through cache.
package snapshot

import (
	"context"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
)

// Source yields full table snapshots.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// RepoSource reads snapshots straight from the repositories.
type RepoSource struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
}

func NewRepoSource(products repo.ProductRepository, categories repo.CategoryRepository) *RepoSource {
	return &RepoSource{products: products, categories: categories}
}

func (s *RepoSource) Products(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

func (s *RepoSource) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

// Fetch loads both tables from src.
func Fetch(ctx context.Context, src Source) ([]models.Product, []models.Category, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := src.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, categories, nil
}
