package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	u.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`,
		u.Username, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if pgErrorCode(err) == pgUniqueViolation {
		return models.User{}, ErrDuplicatedValueUnique
	}
	return u, err
}
