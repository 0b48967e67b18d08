package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type memoryUserRepository struct {
	store *memoryStore
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return errors.Conflict("User with this email already exists")
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.JoinedAt.IsZero() {
		user.JoinedAt = time.Now()
	}
	user.UpdatedAt = user.JoinedAt

	r.store.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			return cloneUser(user), nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memoryUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.users[user.ID]
	if !ok {
		return errors.NotFound("User", nil)
	}

	user.JoinedAt = existing.JoinedAt
	user.UpdatedAt = time.Now()
	r.store.users[user.ID] = cloneUser(user)
	return nil
}
