package repository

import (
	"context"
	"time"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type memoryCartRepository struct {
	store *memoryStore
}

func (r *memoryCartRepository) AddItem(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := r.store.carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			item := items[i]
			return &item, nil
		}
	}

	item := entity.CartItem{
		ProductID: productID,
		Quantity:  1,
		AddedAt:   time.Now(),
	}
	r.store.carts[userID] = append(items, item)
	return &item, nil
}

func (r *memoryCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := r.store.carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			r.store.carts[userID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Cart item", nil)
}

func (r *memoryCartRepository) Clear(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.carts, userID)
	return nil
}

func (r *memoryCartRepository) ListItems(ctx context.Context, userID string) ([]entity.CartItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]entity.CartItem{}, r.store.carts[userID]...), nil
}

func (r *memoryCartRepository) Count(ctx context.Context, userID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.carts[userID])), nil
}
