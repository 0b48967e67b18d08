package repository

// Repositories bundles one implementation of every storage port so a store
// driver can be swapped in a single place.
type Repositories struct {
	Users      UserRepository
	Categories CategoryRepository
	Products   ProductRepository
	Carts      CartRepository
	Orders     OrderRepository
}
