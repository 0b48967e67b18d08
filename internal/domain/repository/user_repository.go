package repository

import (
	"context"

	"ecofinds/internal/domain/entity"
)

type UserRepository interface {
	// Create stores a new user. A second user with the same email is a CONFLICT.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
