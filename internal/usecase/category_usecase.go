package usecase

import (
	"context"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
	"ecofinds/pkg/logger"
)

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

// SeedDefaults installs the default categories into an empty store.
func (uc *CategoryUseCase) SeedDefaults(ctx context.Context) error {
	n, err := uc.categoryRepo.Seed(ctx, entity.DefaultCategories)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("Seeded %d default categories", n)
	}
	return nil
}
