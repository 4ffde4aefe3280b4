package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	Delete(ctx context.Context, id int) error
}
