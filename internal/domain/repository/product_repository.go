package repository

import (
	"context"

	"ecofinds/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDs returns the products that still exist, keyed by id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// List returns one page of matching products, newest first, plus the total match count.
	List(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	// Update refreshes UpdatedAt and keeps CreatedAt.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	CountBySeller(ctx context.Context, sellerID string) (int64, error)
}
