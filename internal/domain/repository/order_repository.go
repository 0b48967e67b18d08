package repository

import (
	"context"

	"ecofinds/internal/domain/entity"
)

type OrderRepository interface {
	// PlaceOrder stores the order with all its purchases and takes each purchased
	// quantity out of the buyer's cart as a single unit. Cart lines and quantities
	// added after the order was staged stay in the cart. If a staged line is no
	// longer in the cart with at least the staged quantity it returns CONFLICT.
	// On error nothing is stored and the cart is untouched.
	PlaceOrder(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	// ListPurchasesByBuyer returns every purchase of the buyer, newest first.
	ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]*entity.Purchase, error)
}
