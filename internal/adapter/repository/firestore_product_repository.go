package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/utils"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = r.client.Collection(productsCollection).NewDoc().ID
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.UpdatedAt = product.CreatedAt

	_, err := r.client.Collection(productsCollection).Doc(product.ID).Create(ctx, newFirestoreProduct(product))
	if err != nil {
		if isFirestoreAlreadyExists(err) {
			return errors.Conflict("Product already exists")
		}
		return errors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isFirestoreNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}
	return productFromSnapshot(doc)
}

func (r *firestoreProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection(productsCollection).Doc(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errors.Internal("Failed to get products", err)
	}
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		product, err := productFromSnapshot(doc)
		if err != nil {
			return nil, err
		}
		products[product.ID] = product
	}
	return products, nil
}

// List pushes the equality filters down to Firestore and applies the text
// query in process, since Firestore has no substring search.
func (r *firestoreProductRepository) List(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection(productsCollection).Query
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list products", err)
	}

	matched := make([]*entity.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := productFromSnapshot(doc)
		if err != nil {
			return nil, 0, err
		}
		if filter.Matches(product) {
			matched = append(matched, product)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	start, end := utils.PageBounds(len(matched), offset, limit)
	return matched[start:end], int64(len(matched)), nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	ref := r.client.Collection(productsCollection).Doc(product.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var existing firestoreProduct
		if err := doc.DataTo(&existing); err != nil {
			return err
		}

		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = time.Now()
		return tx.Set(ref, newFirestoreProduct(product))
	})
	if err != nil {
		if isFirestoreNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product", err)
	}
	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if isFirestoreNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to delete product", err)
	}
	return nil
}

func (r *firestoreProductRepository) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	docs, err := r.client.Collection(productsCollection).Where("sellerId", "==", sellerID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count seller products", err)
	}
	return int64(len(docs)), nil
}

func productFromSnapshot(doc *firestore.DocumentSnapshot) (*entity.Product, error) {
	var data firestoreProduct
	if err := doc.DataTo(&data); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	product, err := data.toEntity(doc.Ref.ID)
	if err != nil {
		return nil, errors.Internal("Failed to parse product price", err)
	}
	return product, nil
}
