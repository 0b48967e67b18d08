package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/utils"
)

type memoryProductRepository struct {
	store *memoryStore
}

func (r *memoryProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.store.products[product.ID]; exists {
		return errors.Conflict("Product already exists")
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = product.CreatedAt

	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return cloneProduct(product), nil
}

func (r *memoryProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.store.products[id]; ok {
			products[id] = cloneProduct(product)
		}
	}
	return products, nil
}

func (r *memoryProductRepository) List(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.Product
	for _, product := range r.store.products {
		if filter.Matches(product) {
			matched = append(matched, product)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start, end := utils.PageBounds(len(matched), offset, limit)

	products := make([]*entity.Product, 0, end-start)
	for _, product := range matched[start:end] {
		products = append(products, cloneProduct(product))
	}
	return products, total, nil
}

func (r *memoryProductRepository) Update(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.products[product.ID]
	if !ok {
		return errors.NotFound("Product", nil)
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return errors.NotFound("Product", nil)
	}
	delete(r.store.products, id)
	return nil
}

func (r *memoryProductRepository) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, product := range r.store.products {
		if product.SellerID == sellerID {
			count++
		}
	}
	return count, nil
}
