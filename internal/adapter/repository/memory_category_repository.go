package repository

import (
	"context"
	"strconv"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type memoryCategoryRepository struct {
	store *memoryStore
}

func (r *memoryCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := make([]*entity.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		copied := *c
		categories = append(categories, &copied)
	}
	return categories, nil
}

func (r *memoryCategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.categories {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Category", nil)
}

func (r *memoryCategoryRepository) Seed(ctx context.Context, names []string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if len(r.store.categories) > 0 {
		return 0, nil
	}
	for i, name := range names {
		r.store.categories = append(r.store.categories, &entity.Category{
			ID:   strconv.Itoa(i + 1),
			Name: name,
		})
	}
	return len(names), nil
}
