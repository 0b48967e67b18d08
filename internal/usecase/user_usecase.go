package usecase

import (
	"context"
	"strings"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
	"ecofinds/pkg/errors"
)

type UserUseCase struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	hasher      PasswordHasher
}

func NewUserUseCase(repos repository.Repositories, hasher PasswordHasher) *UserUseCase {
	return &UserUseCase{
		userRepo:    repos.Users,
		productRepo: repos.Products,
		cartRepo:    repos.Carts,
		orderRepo:   repos.Orders,
		hasher:      hasher,
	}
}

type UpdateProfileInput struct {
	Username  string
	FullName  string
	Phone     string
	Address   string
	AvatarURL string
}

type DashboardStats struct {
	User          *entity.User `json:"user"`
	ListingCount  int64        `json:"listing_count"`
	CartItemCount int64        `json:"cart_item_count"`
	PurchaseCount int          `json:"purchase_count"`
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// UpdateProfile replaces every editable field; empty input clears optional ones.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.BadRequest("Username is required", nil)
	}

	user.Username = username
	user.FullName = strings.TrimSpace(input.FullName)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Address = strings.TrimSpace(input.Address)
	user.AvatarURL = strings.TrimSpace(input.AvatarURL)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := uc.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return errors.Unauthorized("Current password is incorrect", nil)
	}
	if currentPassword == newPassword {
		return errors.BadRequest("New password must differ from the current one", nil)
	}

	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return errors.Internal("Failed to secure password", err)
	}
	user.PasswordHash = hash
	return uc.userRepo.Update(ctx, user)
}

func (uc *UserUseCase) Dashboard(ctx context.Context, userID string) (*DashboardStats, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings, err := uc.productRepo.CountBySeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	cartLines, err := uc.cartRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	purchases, err := uc.orderRepo.ListPurchasesByBuyer(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		User:          user,
		ListingCount:  listings,
		CartItemCount: cartLines,
		PurchaseCount: len(purchases),
	}, nil
}
