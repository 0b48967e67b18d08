package usecase

import (
	"context"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
	"ecofinds/pkg/errors"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem puts one more unit of productID in the user's cart.
func (uc *CartUseCase) AddItem(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID == userID {
		return nil, errors.BadRequest("You cannot add your own product to the cart", nil)
	}

	return uc.cartRepo.AddItem(ctx, userID, productID)
}

func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, productID string) error {
	return uc.cartRepo.RemoveItem(ctx, userID, productID)
}

func (uc *CartUseCase) Clear(ctx context.Context, userID string) error {
	return uc.cartRepo.Clear(ctx, userID)
}

// GetCart joins the cart with live products; lines whose product was deleted are left out.
func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (*entity.CartView, error) {
	items, products, err := loadCart(ctx, uc.cartRepo, uc.productRepo, userID)
	if err != nil {
		return nil, err
	}
	return entity.NewCartView(items, products), nil
}

func loadCart(
	ctx context.Context,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userID string,
) ([]entity.CartItem, map[string]*entity.Product, error) {
	items, err := cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return items, products, nil
}
