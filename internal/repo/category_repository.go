package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	Create(ctx context.Context, category models.Category) (models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (models.Category, error)
	Delete(ctx context.Context, id int) error
}
