package repository

import (
	"sync"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
)

// memoryStore holds every collection behind one lock so checkout can write
// orders and clear a cart as a single step.
type memoryStore struct {
	mu sync.RWMutex

	users      map[string]*entity.User
	categories []*entity.Category
	products   map[string]*entity.Product
	carts      map[string][]entity.CartItem
	orders     map[string]*entity.Order
	orderIDs   []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]*entity.User),
		products: make(map[string]*entity.Product),
		carts:    make(map[string][]entity.CartItem),
		orders:   make(map[string]*entity.Order),
	}
}

// NewMemoryRepositories returns repositories backed by process memory.
func NewMemoryRepositories() repository.Repositories {
	store := newMemoryStore()
	return repository.Repositories{
		Users:      &memoryUserRepository{store: store},
		Categories: &memoryCategoryRepository{store: store},
		Products:   &memoryProductRepository{store: store},
		Carts:      &memoryCartRepository{store: store},
		Orders:     &memoryOrderRepository{store: store},
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.Purchase(nil), o.Items...)
	return &c
}
