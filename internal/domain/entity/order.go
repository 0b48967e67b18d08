package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PurchaseStatusCompleted = "completed"
	PurchaseStatusPending   = "pending"
	PurchaseStatusCancelled = "cancelled"
)

type Order struct {
	ID        string          `json:"id"`
	BuyerID   string          `json:"buyer_id"`
	Total     decimal.Decimal `json:"total"`
	Items     []Purchase      `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// Purchase is one bought cart line. Price is the unit price at checkout time
// and does not follow later edits of the product.
type Purchase struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	BuyerID      string          `json:"buyer_id"`
	SellerID     string          `json:"seller_id"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Status       string          `json:"status"`
	PurchaseDate time.Time       `json:"purchase_date"`
}

type PurchaseWithProduct struct {
	Purchase
	Product *Product `json:"product"`
}
