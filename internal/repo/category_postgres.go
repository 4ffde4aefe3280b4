package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	query := `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Description).Scan(&c.ID)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return models.Category{}, ErrDuplicatedValueUnique
		}
		return models.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}
	return c, nil
}

func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, COALESCE(description, '') FROM categories ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int) (models.Category, error) {
	query := `SELECT id, name, COALESCE(description, '') FROM categories WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c models.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM categories WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
