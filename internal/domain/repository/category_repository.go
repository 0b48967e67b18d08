package repository

import (
	"context"

	"ecofinds/internal/domain/entity"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// Seed inserts names only when no category exists yet and reports how many were inserted.
	Seed(ctx context.Context, names []string) (int, error)
}
