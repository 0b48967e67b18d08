package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type postgresProductRepository struct {
	pool *pgxpool.Pool
}

const productSelect = `
	SELECT p.id, p.title, COALESCE(p.description, ''), p.price, COALESCE(c.name, ''),
	       COALESCE(p.image_url, ''), p.user_id, p.seller_name, p.condition, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func (r *postgresProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.UpdatedAt = product.CreatedAt

	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, user_id, seller_name, title, description, category_id, price, image_url, condition, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, (SELECT id FROM categories WHERE name = $6), $7, $8, $9, $10, $10)`,
		product.ID, product.SellerID, product.SellerName, product.Title, product.Description,
		product.Category, product.Price, product.ImageURL, product.Condition, product.CreatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return errors.Conflict("Product already exists")
		case pgForeignKeyViolation:
			return errors.BadRequest("Invalid seller", err)
		}
		return errors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}
	return product, nil
}

func (r *postgresProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	rows, err := r.pool.Query(ctx, productSelect+` WHERE p.id = ANY($1)`, ids)
	if err != nil {
		return nil, errors.Internal("Failed to get products", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	for _, product := range list {
		products[product.ID] = product
	}
	return products, nil
}

func (r *postgresProductRepository) List(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("c.name = $%d", len(args)))
	}
	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		conds = append(conds, fmt.Sprintf("p.user_id = $%d", len(args)))
	}
	if strings.TrimSpace(filter.Query) != "" {
		args = append(args, likePattern(filter.Query))
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM products p LEFT JOIN categories c ON c.id = p.category_id` + where
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, errors.Internal("Failed to count products", err)
	}

	query := productSelect + where + ` ORDER BY p.created_at DESC, p.id DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list products", err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, 0, errors.Internal("Failed to parse product data", err)
	}
	return products, total, nil
}

func (r *postgresProductRepository) Update(ctx context.Context, product *entity.Product) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE products
		SET title = $2, description = $3, category_id = (SELECT id FROM categories WHERE name = $4),
		    price = $5, image_url = $6, condition = $7, seller_name = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		product.ID, product.Title, product.Description, product.Category,
		product.Price, product.ImageURL, product.Condition, product.SellerName,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product", err)
	}
	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (r *postgresProductRepository) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE user_id = $1`, sellerID).Scan(&count); err != nil {
		return 0, errors.Internal("Failed to count seller products", err)
	}
	return count, nil
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category,
		&p.ImageURL, &p.SellerID, &p.SellerName, &p.Condition, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
