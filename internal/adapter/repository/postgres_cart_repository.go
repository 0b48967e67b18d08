package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type postgresCartRepository struct {
	pool *pgxpool.Pool
}

func (r *postgresCartRepository) AddItem(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	var item entity.CartItem
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO carts (id, user_id) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
			uuid.New().String(), userID,
		)
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity)
			SELECT id, $2, 1 FROM carts WHERE user_id = $1
			ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + 1
			RETURNING product_id, quantity, added_at`,
			userID, productID,
		).Scan(&item.ProductID, &item.Quantity, &item.AddedAt)
	})
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to add item to cart", err)
	}
	return &item, nil
}

func (r *postgresCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1 AND ci.product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return errors.Internal("Failed to remove item from cart", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("Cart item", nil)
	}
	return nil
}

func (r *postgresCartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return errors.Internal("Failed to clear cart", err)
	}
	return nil
}

func (r *postgresCartRepository) ListItems(ctx context.Context, userID string) ([]entity.CartItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ci.product_id, ci.quantity, ci.added_at
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE c.user_id = $1
		ORDER BY ci.added_at, ci.id`,
		userID,
	)
	if err != nil {
		return nil, errors.Internal("Failed to list cart items", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CartItem, error) {
		var item entity.CartItem
		err := row.Scan(&item.ProductID, &item.Quantity, &item.AddedAt)
		return item, err
	})
	if err != nil {
		return nil, errors.Internal("Failed to parse cart items", err)
	}
	return items, nil
}

func (r *postgresCartRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM cart_items ci JOIN carts c ON c.id = ci.cart_id WHERE c.user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, errors.Internal("Failed to count cart items", err)
	}
	return count, nil
}
