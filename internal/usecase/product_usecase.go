package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/logger"
)

type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

type ProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	Condition   string
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, filter, limit, offset)
}

func (uc *ProductUseCase) ListSellerProducts(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, entity.ProductFilter{SellerID: sellerID}, limit, offset)
}

func (uc *ProductUseCase) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input ProductInput) (*entity.Product, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Seller account no longer exists", err)
		}
		return nil, err
	}

	product := &entity.Product{
		SellerID:   seller.ID,
		SellerName: seller.Username,
	}
	if err := uc.apply(ctx, product, input); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product created: productID=%s, sellerID=%s", product.ID, sellerID)
	return product, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, sellerID, productID string, input ProductInput) (*entity.Product, error) {
	product, err := uc.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, product, input); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, sellerID, productID string) error {
	if _, err := uc.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}

	if err := uc.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	logger.Info("Product deleted: productID=%s, sellerID=%s", productID, sellerID)
	return nil
}

func (uc *ProductUseCase) ownedProduct(ctx context.Context, sellerID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to modify this product", nil)
	}
	return product, nil
}

// apply validates input and copies it onto product.
func (uc *ProductUseCase) apply(ctx context.Context, product *entity.Product, input ProductInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return errors.BadRequest("Title is required", nil)
	}
	if !input.Price.IsPositive() {
		return errors.BadRequest("Price must be greater than 0", nil)
	}
	if !entity.IsValidCondition(input.Condition) {
		return errors.BadRequest("Condition must be one of: excellent, good, fair", nil)
	}

	category, err := uc.categoryRepo.GetByName(ctx, strings.TrimSpace(input.Category))
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.BadRequest("Unknown category", err)
		}
		return err
	}

	product.Title = title
	product.Description = strings.TrimSpace(input.Description)
	product.Price = input.Price.Round(2)
	product.Category = category.Name
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.Condition = input.Condition
	return nil
}
