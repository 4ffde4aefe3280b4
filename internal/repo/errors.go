package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category does not exist, either on
	// lookup or when a product references it.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryInUse is returned when deleting a category that products still reference.
	ErrCategoryInUse = errors.New("category is referenced by products")
	// ErrDuplicatedValueUnique is returned when a unique column would be duplicated.
	ErrDuplicatedValueUnique = errors.New("unique constraint violation")
	ErrUserNotFound          = errors.New("user not found")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
