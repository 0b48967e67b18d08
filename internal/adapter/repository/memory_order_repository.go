package repository

import (
	"context"
	"slices"
	"sort"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type memoryOrderRepository struct {
	store *memoryStore
}

func (r *memoryOrderRepository) PlaceOrder(ctx context.Context, order *entity.Order) error {
	if err := ctx.Err(); err != nil {
		return errors.Internal("Failed to place order", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.orders[order.ID]; exists {
		return errors.Conflict("Order already exists")
	}

	remaining, err := takeStaged(r.store.carts[order.BuyerID], order.Items)
	if err != nil {
		return err
	}

	r.store.orders[order.ID] = cloneOrder(order)
	r.store.orderIDs = append(r.store.orderIDs, order.ID)
	if len(remaining) == 0 {
		delete(r.store.carts, order.BuyerID)
	} else {
		r.store.carts[order.BuyerID] = remaining
	}
	return nil
}

// takeStaged returns a copy of items with each purchased quantity removed.
// Lines that reach zero are dropped.
func takeStaged(items []entity.CartItem, staged []entity.Purchase) ([]entity.CartItem, error) {
	remaining := append([]entity.CartItem(nil), items...)
	for _, purchase := range staged {
		i := slices.IndexFunc(remaining, func(item entity.CartItem) bool {
			return item.ProductID == purchase.ProductID
		})
		if i < 0 || remaining[i].Quantity < purchase.Quantity {
			return nil, errCartChanged
		}
		remaining[i].Quantity -= purchase.Quantity
		if remaining[i].Quantity == 0 {
			remaining = slices.Delete(remaining, i, i+1)
		}
	}
	return remaining, nil
}

func (r *memoryOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return cloneOrder(order), nil
}

func (r *memoryOrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	orders := []*entity.Order{}
	// newest first
	for i := len(r.store.orderIDs) - 1; i >= 0; i-- {
		order := r.store.orders[r.store.orderIDs[i]]
		if order.BuyerID == buyerID {
			orders = append(orders, cloneOrder(order))
		}
	}
	return orders, nil
}

func (r *memoryOrderRepository) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]*entity.Purchase, error) {
	orders, err := r.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	purchases := []*entity.Purchase{}
	for _, order := range orders {
		for i := range order.Items {
			purchase := order.Items[i]
			purchases = append(purchases, &purchase)
		}
	}

	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].PurchaseDate.After(purchases[j].PurchaseDate)
	})
	return purchases, nil
}
