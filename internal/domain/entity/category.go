package entity

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories are seeded into an empty category store at startup.
var DefaultCategories = []string{
	"Furniture",
	"Electronics",
	"Clothing",
	"Books",
	"Home & Kitchen",
}
