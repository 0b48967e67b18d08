package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

func cartItemID(userID, productID string) string {
	return fmt.Sprintf("%s_%s", userID, productID)
}

func (r *firestoreCartRepository) AddItem(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	ref := r.client.Collection(cartItemsCollection).Doc(cartItemID(userID, productID))
	productRef := r.client.Collection(productsCollection).Doc(productID)

	var item firestoreCartItem
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(productRef); err != nil {
			return err
		}

		doc, err := tx.Get(ref)
		switch {
		case isFirestoreNotFound(err):
			item = firestoreCartItem{UserID: userID, ProductID: productID, Quantity: 1, AddedAt: time.Now()}
		case err != nil:
			return err
		default:
			if err := doc.DataTo(&item); err != nil {
				return err
			}
			item.Quantity++
		}
		return tx.Set(ref, item)
	})
	if err != nil {
		if isFirestoreNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to add item to cart", err)
	}

	return &entity.CartItem{ProductID: item.ProductID, Quantity: item.Quantity, AddedAt: item.AddedAt}, nil
}

func (r *firestoreCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	_, err := r.client.Collection(cartItemsCollection).Doc(cartItemID(userID, productID)).Delete(ctx, firestore.Exists)
	if err != nil {
		if isFirestoreNotFound(err) {
			return errors.NotFound("Cart item", err)
		}
		return errors.Internal("Failed to remove item from cart", err)
	}
	return nil
}

func (r *firestoreCartRepository) Clear(ctx context.Context, userID string) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(r.cartQuery(userID)).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Internal("Failed to clear cart", err)
	}
	return nil
}

func (r *firestoreCartRepository) ListItems(ctx context.Context, userID string) ([]entity.CartItem, error) {
	docs, err := r.cartQuery(userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list cart items", err)
	}

	items := make([]entity.CartItem, 0, len(docs))
	for _, doc := range docs {
		var data firestoreCartItem
		if err := doc.DataTo(&data); err != nil {
			return nil, errors.Internal("Failed to parse cart item", err)
		}
		items = append(items, entity.CartItem{ProductID: data.ProductID, Quantity: data.Quantity, AddedAt: data.AddedAt})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return items, nil
}

func (r *firestoreCartRepository) Count(ctx context.Context, userID string) (int64, error) {
	docs, err := r.cartQuery(userID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count cart items", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreCartRepository) cartQuery(userID string) firestore.Query {
	return r.client.Collection(cartItemsCollection).Where("userId", "==", userID)
}
