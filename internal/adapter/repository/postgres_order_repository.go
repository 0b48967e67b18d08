package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
	"ecofinds/pkg/logger"
)

type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

const purchaseSelect = `
	SELECT oi.id, oi.order_id, COALESCE(oi.product_id, ''), oi.product_title, o.user_id,
	       COALESCE(oi.seller_id, ''), oi.price_at_purchase, oi.quantity, oi.status, oi.created_at
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id`

func (r *postgresOrderRepository) PlaceOrder(ctx context.Context, order *entity.Order) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO orders (id, user_id, total, created_at) VALUES ($1, $2, $3, $4)`,
			order.ID, order.BuyerID, order.Total, order.CreatedAt,
		)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, item := range order.Items {
			batch.Queue(`
				INSERT INTO order_items (id, order_id, product_id, seller_id, product_title, price_at_purchase, quantity, status, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				item.ID, order.ID, item.ProductID, item.SellerID, item.ProductTitle,
				item.Price, item.Quantity, item.Status, item.PurchaseDate,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := takeFromCart(ctx, tx, order.BuyerID, item); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM carts
			WHERE user_id = $1 AND NOT EXISTS (SELECT 1 FROM cart_items ci WHERE ci.cart_id = carts.id)`,
			order.BuyerID,
		)
		return err
	})
	if err != nil {
		logger.LogCheckoutError(order.BuyerID, order.ID, err)
		if errors.IsConflict(err) {
			return err
		}
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return errors.Conflict("Order already exists")
		case pgForeignKeyViolation:
			return errors.BadRequest("A product in the cart is no longer available", err)
		}
		return errors.Internal("Failed to place order", err)
	}
	return nil
}

// takeFromCart removes the purchased quantity from the buyer's cart line,
// dropping the line when nothing is left.
func takeFromCart(ctx context.Context, tx pgx.Tx, buyerID string, item entity.Purchase) error {
	tag, err := tx.Exec(ctx, `
		DELETE FROM cart_items ci USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1 AND ci.product_id = $2 AND ci.quantity = $3`,
		buyerID, item.ProductID, item.Quantity,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	tag, err = tx.Exec(ctx, `
		UPDATE cart_items ci SET quantity = ci.quantity - $3
		FROM carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1 AND ci.product_id = $2 AND ci.quantity > $3`,
		buyerID, item.ProductID, item.Quantity,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errCartChanged
	}
	return nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, total, created_at FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.BuyerID, &order.Total, &order.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	items, err := r.queryPurchases(ctx, purchaseSelect+` WHERE oi.order_id = $1 ORDER BY oi.created_at, oi.id`, id)
	if err != nil {
		return nil, err
	}
	order.Items = make([]entity.Purchase, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, *item)
	}
	return &order, nil
}

func (r *postgresOrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, total, created_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`, buyerID,
	)
	if err != nil {
		return nil, errors.Internal("Failed to list orders", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Order, error) {
		var o entity.Order
		err := row.Scan(&o.ID, &o.BuyerID, &o.Total, &o.CreatedAt)
		o.Items = []entity.Purchase{}
		return &o, err
	})
	if err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	items, err := r.queryPurchases(ctx, purchaseSelect+` WHERE oi.order_id = ANY($1) ORDER BY oi.created_at, oi.id`, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, *item)
		}
	}
	return orders, nil
}

func (r *postgresOrderRepository) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]*entity.Purchase, error) {
	return r.queryPurchases(ctx, purchaseSelect+` WHERE o.user_id = $1 ORDER BY oi.created_at DESC, oi.id`, buyerID)
}

func (r *postgresOrderRepository) queryPurchases(ctx context.Context, sql string, args ...any) ([]*entity.Purchase, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Internal("Failed to list purchases", err)
	}
	purchases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Purchase, error) {
		var p entity.Purchase
		err := row.Scan(
			&p.ID, &p.OrderID, &p.ProductID, &p.ProductTitle, &p.BuyerID,
			&p.SellerID, &p.Price, &p.Quantity, &p.Status, &p.PurchaseDate,
		)
		return &p, err
	})
	if err != nil {
		return nil, errors.Internal("Failed to parse purchase data", err)
	}
	return purchases, nil
}
