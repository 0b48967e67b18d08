package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/logger"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

// PlaceOrder writes the order document and takes the purchased quantities out
// of the buyer's cart docs in one transaction. Firestore requires every read to
// happen before the first write.
func (r *firestoreOrderRepository) PlaceOrder(ctx context.Context, order *entity.Order) error {
	orderRef := r.client.Collection(ordersCollection).Doc(order.ID)
	cartRefs := make([]*firestore.DocumentRef, 0, len(order.Items))
	for _, item := range order.Items {
		cartRefs = append(cartRefs, r.client.Collection(cartItemsCollection).Doc(cartItemID(order.BuyerID, item.ProductID)))
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		cartDocs, err := tx.GetAll(cartRefs)
		if err != nil {
			return err
		}

		left := make([]int, len(cartDocs))
		for i, doc := range cartDocs {
			if !doc.Exists() {
				return errCartChanged
			}
			var line firestoreCartItem
			if err := doc.DataTo(&line); err != nil {
				return err
			}
			if line.Quantity < order.Items[i].Quantity {
				return errCartChanged
			}
			left[i] = line.Quantity - order.Items[i].Quantity
		}

		if err := tx.Create(orderRef, newFirestoreOrder(order)); err != nil {
			return err
		}
		for i, ref := range cartRefs {
			if left[i] == 0 {
				err = tx.Delete(ref)
			} else {
				err = tx.Update(ref, []firestore.Update{{Path: "quantity", Value: left[i]}})
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.LogCheckoutError(order.BuyerID, order.ID, err)
		if errors.IsConflict(err) {
			return err
		}
		if isFirestoreAlreadyExists(err) {
			return errors.Conflict("Order already exists")
		}
		return errors.Internal("Failed to place order", err)
	}
	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isFirestoreNotFound(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}
	return orderFromSnapshot(doc)
}

func (r *firestoreOrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	docs, err := r.client.Collection(ordersCollection).Where("buyerId", "==", buyerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list orders", err)
	}

	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := orderFromSnapshot(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *firestoreOrderRepository) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]*entity.Purchase, error) {
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

func orderFromSnapshot(doc *firestore.DocumentSnapshot) (*entity.Order, error) {
	var data firestoreOrder
	if err := doc.DataTo(&data); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	order, err := data.toEntity(doc.Ref.ID)
	if err != nil {
		return nil, errors.Internal("Failed to parse order amounts", err)
	}
	return order, nil
}
