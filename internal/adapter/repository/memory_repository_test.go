package repository

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

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()

	user := &entity.User{Email: "ana@example.com", Username: "ana"}
	require.NoError(t, repos.Users.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.JoinedAt.IsZero())

	err := repos.Users.Create(ctx, &entity.User{Email: "ANA@example.com", Username: "other"})
	assert.True(t, errors.IsConflict(err))

	found, err := repos.Users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found.FullName = "Ana Lima"
	require.NoError(t, repos.Users.Update(ctx, found))

	reloaded, err := repos.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", reloaded.FullName)
	assert.True(t, reloaded.JoinedAt.Equal(user.JoinedAt))

	_, err = repos.Users.GetByID(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(repos.Users.Update(ctx, &entity.User{ID: "missing"})))
}

func TestMemoryCategorySeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()

	n, err := repos.Categories.Seed(ctx, entity.DefaultCategories)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = repos.Categories.Seed(ctx, []string{"Toys"})
	require.NoError(t, err)
	assert.Zero(t, n)

	categories, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 5)

	_, err = repos.Categories.GetByName(ctx, "Toys")
	assert.True(t, errors.IsNotFound(err))
}

func TestMemoryProductRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	desk := &entity.Product{Title: "Oak Desk", Description: "Solid wood", Category: "Furniture", SellerID: "s1", Price: decimal.NewFromInt(1500), CreatedAt: base}
	lamp := &entity.Product{Title: "Lamp", Description: "Desk lamp, warm light", Category: "Electronics", SellerID: "s1", Price: decimal.NewFromInt(300), CreatedAt: base.Add(time.Hour)}
	coat := &entity.Product{Title: "Coat", Description: "Wool", Category: "Clothing", SellerID: "s2", Price: decimal.NewFromInt(900), CreatedAt: base.Add(2 * time.Hour)}
	for _, p := range []*entity.Product{desk, lamp, coat} {
		require.NoError(t, repos.Products.Create(ctx, p))
	}

	all, total, err := repos.Products.List(ctx, entity.ProductFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{coat.ID, lamp.ID, desk.ID}, productIDs(all))

	found, total, err := repos.Products.List(ctx, entity.ProductFilter{Query: "DESK"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{lamp.ID, desk.ID}, productIDs(found))

	found, _, err = repos.Products.List(ctx, entity.ProductFilter{Query: "desk", Category: "Furniture"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{desk.ID}, productIDs(found))

	page, total, err := repos.Products.List(ctx, entity.ProductFilter{}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{lamp.ID}, productIDs(page))

	count, err := repos.Products.CountBySeller(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	edited := *desk
	edited.Price = decimal.NewFromInt(1200)
	require.NoError(t, repos.Products.Update(ctx, &edited))
	reloaded, err := repos.Products.GetByID(ctx, desk.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Price.Equal(decimal.NewFromInt(1200)))
	assert.True(t, reloaded.CreatedAt.Equal(base))
	assert.True(t, reloaded.UpdatedAt.After(base))

	byID, err := repos.Products.GetByIDs(ctx, []string{desk.ID, "gone"})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	require.NoError(t, repos.Products.Delete(ctx, desk.ID))
	assert.True(t, errors.IsNotFound(repos.Products.Delete(ctx, desk.ID)))
	assert.True(t, errors.IsNotFound(repos.Products.Update(ctx, &edited)))
}

func TestMemoryCartRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()

	for i := 0; i < 3; i++ {
		_, err := repos.Carts.AddItem(ctx, "buyer", "p1")
		require.NoError(t, err)
	}
	item, err := repos.Carts.AddItem(ctx, "buyer", "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	items, err := repos.Carts.ListItems(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)

	other, err := repos.Carts.ListItems(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, repos.Carts.RemoveItem(ctx, "buyer", "p1"))
	assert.True(t, errors.IsNotFound(repos.Carts.RemoveItem(ctx, "buyer", "p1")))

	count, err := repos.Carts.Count(ctx, "buyer")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repos.Carts.Clear(ctx, "buyer"))
	items, err = repos.Carts.ListItems(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryOrderRepositoryPlaceOrderClearsCart(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()

	_, err := repos.Carts.AddItem(ctx, "buyer", "p1")
	require.NoError(t, err)

	now := time.Now()
	order := &entity.Order{
		ID:        "o1",
		BuyerID:   "buyer",
		Total:     decimal.NewFromInt(1500),
		CreatedAt: now,
		Items: []entity.Purchase{{
			ID: "pu1", OrderID: "o1", ProductID: "p1", BuyerID: "buyer", SellerID: "s1",
			Price: decimal.NewFromInt(1500), Quantity: 1, Status: entity.PurchaseStatusCompleted, PurchaseDate: now,
		}},
	}
	require.NoError(t, repos.Orders.PlaceOrder(ctx, order))
	assert.True(t, errors.IsConflict(repos.Orders.PlaceOrder(ctx, order)))

	items, err := repos.Carts.ListItems(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, items)

	stored, err := repos.Orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)

	purchases, err := repos.Orders.ListPurchasesByBuyer(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "p1", purchases[0].ProductID)

	orders, err := repos.Orders.ListByBuyer(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMemoryOrderRepositoryCancelledContextKeepsCart(t *testing.T) {
	repos := NewMemoryRepositories()
	_, err := repos.Carts.AddItem(context.Background(), "buyer", "p1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = repos.Orders.PlaceOrder(ctx, &entity.Order{ID: "o1", BuyerID: "buyer"})
	require.Error(t, err)

	items, err := repos.Carts.ListItems(context.Background(), "buyer")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func productIDs(products []*entity.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
