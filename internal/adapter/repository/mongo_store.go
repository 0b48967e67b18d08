package repository

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
)

// NewMongoRepositories returns repositories backed by MongoDB. Checkout uses
// multi-document transactions, so the server must run as a replica set.
func NewMongoRepositories(client *mongo.Client, db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Users:      &mongoUserRepository{users: db.Collection("users")},
		Categories: &mongoCategoryRepository{categories: db.Collection("categories")},
		Products:   &mongoProductRepository{products: db.Collection("products")},
		Carts:      &mongoCartRepository{items: db.Collection("cart_items"), products: db.Collection("products")},
		Orders:     &mongoOrderRepository{client: client, orders: db.Collection("orders"), cartItems: db.Collection("cart_items")},
	}
}

func isNoDocuments(err error) bool {
	return stderrors.Is(err, mongo.ErrNoDocuments)
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.NewDecimal128(0, 0)
	}
	return v
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(v.String())
}

type mongoUser struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Username     string    `bson:"username"`
	FullName     string    `bson:"full_name"`
	Phone        string    `bson:"phone,omitempty"`
	Address      string    `bson:"address,omitempty"`
	AvatarURL    string    `bson:"avatar_url,omitempty"`
	JoinedAt     time.Time `bson:"joined_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func newMongoUser(u *entity.User) mongoUser {
	return mongoUser{
		ID:           u.ID,
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

func (d mongoUser) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID,
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

type mongoProduct struct {
	ID          string               `bson:"_id"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Category    string               `bson:"category"`
	ImageURL    string               `bson:"image_url"`
	SellerID    string               `bson:"seller_id"`
	SellerName  string               `bson:"seller_name"`
	Condition   string               `bson:"condition"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func newMongoProduct(p *entity.Product) mongoProduct {
	return mongoProduct{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       toDecimal128(p.Price),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		Condition:   p.Condition,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d mongoProduct) toEntity() (*entity.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:          d.ID,
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

type mongoCartItem struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	ProductID string    `bson:"product_id"`
	Quantity  int       `bson:"quantity"`
	AddedAt   time.Time `bson:"added_at"`
}

type mongoPurchase struct {
	ID           string               `bson:"id"`
	ProductID    string               `bson:"product_id"`
	ProductTitle string               `bson:"product_title"`
	SellerID     string               `bson:"seller_id"`
	Price        primitive.Decimal128 `bson:"price"`
	Quantity     int                  `bson:"quantity"`
	Status       string               `bson:"status"`
	PurchaseDate time.Time            `bson:"purchase_date"`
}

type mongoOrder struct {
	ID        string               `bson:"_id"`
	BuyerID   string               `bson:"buyer_id"`
	Total     primitive.Decimal128 `bson:"total"`
	Items     []mongoPurchase      `bson:"items"`
	CreatedAt time.Time            `bson:"created_at"`
}

func newMongoOrder(o *entity.Order) mongoOrder {
	doc := mongoOrder{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		Total:     toDecimal128(o.Total),
		Items:     make([]mongoPurchase, 0, len(o.Items)),
		CreatedAt: o.CreatedAt,
	}
	for _, item := range o.Items {
		doc.Items = append(doc.Items, mongoPurchase{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductTitle: item.ProductTitle,
			SellerID:     item.SellerID,
			Price:        toDecimal128(item.Price),
			Quantity:     item.Quantity,
			Status:       item.Status,
			PurchaseDate: item.PurchaseDate,
		})
	}
	return doc
}

func (d mongoOrder) toEntity() (*entity.Order, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return nil, err
	}
	order := &entity.Order{
		ID:        d.ID,
		BuyerID:   d.BuyerID,
		Total:     total,
		Items:     make([]entity.Purchase, 0, len(d.Items)),
		CreatedAt: d.CreatedAt,
	}
	for _, item := range d.Items {
		price, err := fromDecimal128(item.Price)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, entity.Purchase{
			ID:           item.ID,
			OrderID:      d.ID,
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
