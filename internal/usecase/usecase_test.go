package usecase

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ecofinds/internal/adapter/repository"
	"ecofinds/internal/domain/entity"
	domainrepo "ecofinds/internal/domain/repository"
	"ecofinds/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// plainHasher keeps tests fast; bcrypt itself is covered in infrastructure/auth.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return io.ErrUnexpectedEOF
	}
	return nil
}

type staticTokens struct{}

func (staticTokens) Issue(userID string) (string, time.Time, error) {
	return "token-" + userID, time.Now().Add(time.Hour), nil
}

type fixture struct {
	repos      domainrepo.Repositories
	auth       *AuthUseCase
	users      *UserUseCase
	products   *ProductUseCase
	carts      *CartUseCase
	orders     *OrderUseCase
	categories *CategoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := repository.NewMemoryRepositories()

	f := &fixture{
		repos:      repos,
		auth:       NewAuthUseCase(repos.Users, plainHasher{}, staticTokens{}),
		users:      NewUserUseCase(repos, plainHasher{}),
		products:   NewProductUseCase(repos.Products, repos.Categories, repos.Users),
		carts:      NewCartUseCase(repos.Carts, repos.Products),
		orders:     NewOrderUseCase(repos.Orders, repos.Carts, repos.Products),
		categories: NewCategoryUseCase(repos.Categories),
	}
	require.NoError(t, f.categories.SeedDefaults(context.Background()))
	return f
}

func (f *fixture) register(t *testing.T, name string) *entity.User {
	t.Helper()
	result, err := f.auth.Register(context.Background(), RegisterInput{
		Email:    name + "@example.com",
		Password: "password-" + name,
		Username: name,
	})
	require.NoError(t, err)
	return result.User
}

func (f *fixture) listProduct(t *testing.T, seller *entity.User, title string, price int64) *entity.Product {
	t.Helper()
	product, err := f.products.CreateProduct(context.Background(), seller.ID, ProductInput{
		Title:     title,
		Price:     decimal.NewFromInt(price),
		Category:  "Furniture",
		Condition: entity.ConditionGood,
	})
	require.NoError(t, err)
	return product
}

func productInput(title string, price string) ProductInput {
	return ProductInput{
		Title:       title,
		Description: strings.ToLower(title) + " in good shape",
		Price:       decimal.RequireFromString(price),
		Category:    "Furniture",
		Condition:   entity.ConditionExcellent,
	}
}
