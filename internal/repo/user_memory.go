package repo

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: []models.User{},
	}
}

func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) CreateUser(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}

	u.ID = len(r.users) + 1
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users = append(r.users, u)
	return u, nil
}
