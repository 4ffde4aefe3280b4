package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

const queryTimeout = 3 * time.Second

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, quantity, unit_price, category_id) VALUES ($1, $2, $3, $4) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Quantity, p.UnitPrice, p.CategoryID).Scan(&p.ID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return models.Product{}, ErrCategoryNotFound
		}
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, quantity, unit_price, category_id FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.UnitPrice, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT id, name, quantity, unit_price, category_id FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Quantity, &p.UnitPrice, &p.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
