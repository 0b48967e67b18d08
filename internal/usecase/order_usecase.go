package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/logger"
)

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// Checkout turns every live cart line into a completed purchase at the current
// price. PlaceOrder commits the order and takes exactly the purchased quantities
// out of the cart, so lines added meanwhile stay and a failed checkout records
// nothing.
func (uc *OrderUseCase) Checkout(ctx context.Context, buyerID string) (*entity.Order, error) {
	items, products, err := loadCart(ctx, uc.cartRepo, uc.productRepo, buyerID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		BuyerID:   buyerID,
		Total:     decimal.Zero,
		CreatedAt: now,
	}

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		order.Items = append(order.Items, entity.Purchase{
			ID:           uuid.New().String(),
			OrderID:      order.ID,
			ProductID:    product.ID,
			ProductTitle: product.Title,
			BuyerID:      buyerID,
			SellerID:     product.SellerID,
			Price:        product.Price,
			Quantity:     item.Quantity,
			Status:       entity.PurchaseStatusCompleted,
			PurchaseDate: now,
		})
		order.Total = order.Total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if len(order.Items) == 0 {
		return nil, errors.BadRequest("Cart is empty", nil)
	}

	if err := uc.orderRepo.PlaceOrder(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("Order placed: orderID=%s, buyerID=%s, lines=%d, total=%s",
		order.ID, buyerID, len(order.Items), order.Total.StringFixed(2))
	return order, nil
}

// PurchaseHistory lists the buyer's purchases, newest first. Product is nil for
// purchases whose listing has since been deleted.
func (uc *OrderUseCase) PurchaseHistory(ctx context.Context, buyerID string) ([]entity.PurchaseWithProduct, error) {
	purchases, err := uc.orderRepo.ListPurchasesByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		if p.ProductID != "" {
			ids = append(ids, p.ProductID)
		}
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	history := make([]entity.PurchaseWithProduct, 0, len(purchases))
	for _, p := range purchases {
		history = append(history, entity.PurchaseWithProduct{
			Purchase: *p,
			Product:  products[p.ProductID],
		})
	}
	return history, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return uc.orderRepo.ListByBuyer(ctx, buyerID)
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("You don't have permission to view this order", nil)
	}
	return order, nil
}
