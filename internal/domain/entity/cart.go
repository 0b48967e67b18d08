package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type CartLine struct {
	Product  *Product        `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// NewCartView joins cart items with their products. Items whose product is
// missing from products are left out.
func NewCartView(items []CartItem, products map[string]*Product) *CartView {
	view := &CartView{
		Items: make([]CartLine, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, CartLine{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}
	view.ItemCount = len(view.Items)
	return view
}
