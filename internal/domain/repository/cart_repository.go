package repository

import (
	"context"

	"ecofinds/internal/domain/entity"
)

type CartRepository interface {
	// AddItem increments the line for productID or starts it at quantity 1.
	AddItem(ctx context.Context, userID, productID string) (*entity.CartItem, error)
	// RemoveItem drops the whole line regardless of quantity.
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	// ListItems returns the buyer's lines in the order they were first added.
	ListItems(ctx context.Context, userID string) ([]entity.CartItem, error)
	Count(ctx context.Context, userID string) (int64, error)
}
