package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type mongoCartRepository struct {
	items    *mongo.Collection
	products *mongo.Collection
}

func (r *mongoCartRepository) AddItem(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	if err := r.products.FindOne(ctx, bson.M{"_id": productID}).Err(); err != nil {
		if isNoDocuments(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to add item to cart", err)
	}

	var doc mongoCartItem
	err := r.items.FindOneAndUpdate(ctx,
		bson.M{"_id": cartItemID(userID, productID)},
		bson.M{
			"$inc": bson.M{"quantity": 1},
			"$setOnInsert": bson.M{
				"user_id":    userID,
				"product_id": productID,
				"added_at":   time.Now(),
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, errors.Internal("Failed to add item to cart", err)
	}

	return &entity.CartItem{ProductID: doc.ProductID, Quantity: doc.Quantity, AddedAt: doc.AddedAt}, nil
}

func (r *mongoCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	result, err := r.items.DeleteOne(ctx, bson.M{"_id": cartItemID(userID, productID)})
	if err != nil {
		return errors.Internal("Failed to remove item from cart", err)
	}
	if result.DeletedCount == 0 {
		return errors.NotFound("Cart item", nil)
	}
	return nil
}

func (r *mongoCartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.items.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return errors.Internal("Failed to clear cart", err)
	}
	return nil
}

func (r *mongoCartRepository) ListItems(ctx context.Context, userID string) ([]entity.CartItem, error) {
	cursor, err := r.items.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Internal("Failed to list cart items", err)
	}

	var docs []mongoCartItem
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("Failed to parse cart items", err)
	}

	items := make([]entity.CartItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, entity.CartItem{ProductID: doc.ProductID, Quantity: doc.Quantity, AddedAt: doc.AddedAt})
	}
	return items, nil
}

func (r *mongoCartRepository) Count(ctx context.Context, userID string) (int64, error) {
	count, err := r.items.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, errors.Internal("Failed to count cart items", err)
	}
	return count, nil
}
