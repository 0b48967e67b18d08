package repository

import (
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
)

const (
	usersCollection      = "users"
	userEmailsCollection = "user_emails"
	categoriesCollection = "categories"
	productsCollection   = "products"
	cartItemsCollection  = "cart_items"
	ordersCollection     = "orders"
)

// NewFirestoreRepositories returns repositories backed by Cloud Firestore.
func NewFirestoreRepositories(client *firestore.Client) repository.Repositories {
	return repository.Repositories{
		Users:      &firestoreUserRepository{client: client},
		Categories: &firestoreCategoryRepository{client: client},
		Products:   &firestoreProductRepository{client: client},
		Carts:      &firestoreCartRepository{client: client},
		Orders:     &firestoreOrderRepository{client: client},
	}
}

func isFirestoreNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isFirestoreAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// Documents keep prices as decimal strings so stored amounts never pass through float64.

type firestoreUser struct {
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"passwordHash"`
	Username     string    `firestore:"username"`
	FullName     string    `firestore:"fullName"`
	Phone        string    `firestore:"phone"`
	Address      string    `firestore:"address"`
	AvatarURL    string    `firestore:"avatarUrl"`
	JoinedAt     time.Time `firestore:"joinedAt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}

func newFirestoreUser(u *entity.User) firestoreUser {
	return firestoreUser{
		Email:        strings.ToLower(u.Email),
		PasswordHash: u.PasswordHash,
		Username:     u.Username,
		FullName:     u.FullName,
		Phone:        u.Phone,
		Address:      u.Address,
		AvatarURL:    u.AvatarURL,
		JoinedAt:     u.JoinedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d firestoreUser) toEntity(id string) *entity.User {
	return &entity.User{
		ID:           id,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Username:     d.Username,
		FullName:     d.FullName,
		Phone:        d.Phone,
		Address:      d.Address,
		AvatarURL:    d.AvatarURL,
		JoinedAt:     d.JoinedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type firestoreProduct struct {
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	Price       string    `firestore:"price"`
	Category    string    `firestore:"category"`
	ImageURL    string    `firestore:"imageUrl"`
	SellerID    string    `firestore:"sellerId"`
	SellerName  string    `firestore:"sellerName"`
	Condition   string    `firestore:"condition"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func newFirestoreProduct(p *entity.Product) firestoreProduct {
	return firestoreProduct{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.String(),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		Condition:   p.Condition,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d firestoreProduct) toEntity(id string) (*entity.Product, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Price:       price,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		SellerID:    d.SellerID,
		SellerName:  d.SellerName,
		Condition:   d.Condition,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

type firestoreCartItem struct {
	UserID    string    `firestore:"userId"`
	ProductID string    `firestore:"productId"`
	Quantity  int       `firestore:"quantity"`
	AddedAt   time.Time `firestore:"addedAt"`
}

type firestorePurchase struct {
	ID           string    `firestore:"id"`
	ProductID    string    `firestore:"productId"`
	ProductTitle string    `firestore:"productTitle"`
	SellerID     string    `firestore:"sellerId"`
	Price        string    `firestore:"price"`
	Quantity     int       `firestore:"quantity"`
	Status       string    `firestore:"status"`
	PurchaseDate time.Time `firestore:"purchaseDate"`
}

type firestoreOrder struct {
	BuyerID   string              `firestore:"buyerId"`
	Total     string              `firestore:"total"`
	Items     []firestorePurchase `firestore:"items"`
	CreatedAt time.Time           `firestore:"createdAt"`
}

func newFirestoreOrder(o *entity.Order) firestoreOrder {
	doc := firestoreOrder{
		BuyerID:   o.BuyerID,
		Total:     o.Total.String(),
		Items:     make([]firestorePurchase, 0, len(o.Items)),
		CreatedAt: o.CreatedAt,
	}
	for _, item := range o.Items {
		doc.Items = append(doc.Items, firestorePurchase{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductTitle: item.ProductTitle,
			SellerID:     item.SellerID,
			Price:        item.Price.String(),
			Quantity:     item.Quantity,
			Status:       item.Status,
			PurchaseDate: item.PurchaseDate,
		})
	}
	return doc
}

func (d firestoreOrder) toEntity(id string) (*entity.Order, error) {
	total, err := decimal.NewFromString(d.Total)
	if err != nil {
		return nil, err
	}
	order := &entity.Order{
		ID:        id,
		BuyerID:   d.BuyerID,
		Total:     total,
		Items:     make([]entity.Purchase, 0, len(d.Items)),
		CreatedAt: d.CreatedAt,
	}
	for _, item := range d.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, entity.Purchase{
			ID:           item.ID,
			OrderID:      id,
			ProductID:    item.ProductID,
			ProductTitle: item.ProductTitle,
			BuyerID:      d.BuyerID,
			SellerID:     item.SellerID,
			Price:        price,
			Quantity:     item.Quantity,
			Status:       item.Status,
			PurchaseDate: item.PurchaseDate,
		})
	}
	return order, nil
}
