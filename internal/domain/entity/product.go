package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
)

func IsValidCondition(condition string) bool {
	switch condition {
	case ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	SellerID    string          `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	Condition   string          `json:"condition"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductFilter narrows a product listing. Empty fields match everything.
type ProductFilter struct {
	Query    string
	Category string
	SellerID string
}

// Matches applies the filter to a single product: category and seller by equality,
// query as a case-insensitive substring of title or description.
func (f ProductFilter) Matches(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.SellerID != "" && p.SellerID != f.SellerID {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}
	return true
}
