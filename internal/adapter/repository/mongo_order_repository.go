package repository

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/logger"
)

type mongoOrderRepository struct {
	client    *mongo.Client
	orders    *mongo.Collection
	cartItems *mongo.Collection
}

func (r *mongoOrderRepository) PlaceOrder(ctx context.Context, order *entity.Order) error {
	session, err := r.client.StartSession()
	if err != nil {
		return errors.Internal("Failed to start checkout session", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := r.orders.InsertOne(sessCtx, newMongoOrder(order)); err != nil {
			return nil, err
		}
		for _, item := range order.Items {
			if err := r.takeFromCart(sessCtx, order.BuyerID, item); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		logger.LogCheckoutError(order.BuyerID, order.ID, err)
		if errors.IsConflict(err) {
			return err
		}
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("Order already exists")
		}
		return errors.Internal("Failed to place order", err)
	}
	return nil
}

// takeFromCart removes the purchased quantity from the buyer's cart line,
// dropping the line when nothing is left.
func (r *mongoOrderRepository) takeFromCart(ctx context.Context, buyerID string, item entity.Purchase) error {
	id := cartItemID(buyerID, item.ProductID)

	deleted, err := r.cartItems.DeleteOne(ctx, bson.M{"_id": id, "quantity": item.Quantity})
	if err != nil {
		return err
	}
	if deleted.DeletedCount > 0 {
		return nil
	}

	updated, err := r.cartItems.UpdateOne(ctx,
		bson.M{"_id": id, "quantity": bson.M{"$gt": item.Quantity}},
		bson.M{"$inc": bson.M{"quantity": -item.Quantity}},
	)
	if err != nil {
		return err
	}
	if updated.MatchedCount == 0 {
		return errCartChanged
	}
	return nil
}

func (r *mongoOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var doc mongoOrder
	if err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}
	return mongoOrderToEntity(doc)
}

func (r *mongoOrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	cursor, err := r.orders.Find(ctx,
		bson.M{"buyer_id": buyerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Internal("Failed to list orders", err)
	}

	var docs []mongoOrder
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := mongoOrderToEntity(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *mongoOrderRepository) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]*entity.Purchase, error) {
	orders, err := r.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	purchases := []*entity.Purchase{}
	for _, order := range orders {
		for i := range order.Items {
			purchases = append(purchases, &order.Items[i])
		}
	}

	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].PurchaseDate.After(purchases[j].PurchaseDate)
	})
	return purchases, nil
}

func mongoOrderToEntity(doc mongoOrder) (*entity.Order, error) {
	order, err := doc.toEntity()
	if err != nil {
		return nil, errors.Internal("Failed to parse order amounts", err)
	}
	return order, nil
}
