package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	seller := f.register(t, "seller")

	product, err := f.products.CreateProduct(context.Background(), seller.ID, productInput("Oak Desk", "1500.499"))
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, seller.ID, product.SellerID)
	assert.Equal(t, "seller", product.SellerName)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("1500.5")))
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	seller := f.register(t, "seller")

	tests := map[string]func(in *ProductInput){
		"unknown category": func(in *ProductInput) { in.Category = "Spaceships" },
		"zero price":       func(in *ProductInput) { in.Price = decimal.Zero },
		"negative price":   func(in *ProductInput) { in.Price = decimal.NewFromInt(-5) },
		"bad condition":    func(in *ProductInput) { in.Condition = "mint" },
		"blank title":      func(in *ProductInput) { in.Title = "   " },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := productInput("Chair", "40")
			mutate(&in)

			_, err := f.products.CreateProduct(context.Background(), seller.ID, in)
			assert.True(t, errors.Is(err, errors.CodeBadRequest), err)
		})
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seller := f.register(t, "seller")
	other := f.register(t, "other")
	product := f.listProduct(t, seller, "Desk", 1500)

	_, err := f.products.UpdateProduct(ctx, other.ID, product.ID, productInput("Mine now", "1"))
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	time.Sleep(2 * time.Millisecond)
	updated, err := f.products.UpdateProduct(ctx, seller.ID, product.ID, productInput("Desk v2", "1200"))
	require.NoError(t, err)
	assert.Equal(t, "Desk v2", updated.Title)
	assert.True(t, updated.CreatedAt.Equal(product.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(product.UpdatedAt))

	_, err = f.products.UpdateProduct(ctx, seller.ID, "missing", productInput("x", "1"))
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seller := f.register(t, "seller")
	other := f.register(t, "other")
	product := f.listProduct(t, seller, "Desk", 1500)

	assert.True(t, errors.Is(f.products.DeleteProduct(ctx, other.ID, product.ID), errors.CodeForbidden))
	require.NoError(t, f.products.DeleteProduct(ctx, seller.ID, product.ID))
	assert.True(t, errors.IsNotFound(f.products.DeleteProduct(ctx, seller.ID, product.ID)))
}

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seller := f.register(t, "seller")
	other := f.register(t, "other")

	f.listProduct(t, seller, "Oak Desk", 1500)
	f.listProduct(t, seller, "Bookshelf", 300)
	f.listProduct(t, other, "Standing desk", 900)

	found, total, err := f.products.ListProducts(ctx, entity.ProductFilter{Query: "desk"}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, found, 2)

	mine, total, err := f.products.ListSellerProducts(ctx, seller.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range mine {
		assert.Equal(t, seller.ID, p.SellerID)
	}

	none, total, err := f.products.ListProducts(ctx, entity.ProductFilter{Category: "Books"}, 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}
