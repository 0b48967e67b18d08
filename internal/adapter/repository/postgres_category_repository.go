package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type postgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func (r *postgresCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id::text, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, errors.Internal("Failed to list categories", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Category, error) {
		var c entity.Category
		err := row.Scan(&c.ID, &c.Name)
		return &c, err
	})
	if err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}
	return categories, nil
}

func (r *postgresCategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var c entity.Category
	err := r.pool.QueryRow(ctx, `SELECT id::text, name FROM categories WHERE name = $1`, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("Category", err)
		}
		return nil, errors.Internal("Failed to get category", err)
	}
	return &c, nil
}

func (r *postgresCategoryRepository) Seed(ctx context.Context, names []string) (int, error) {
	inserted := 0
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, name := range names {
			tag, err := tx.Exec(ctx, `INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
			if err != nil {
				return err
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, errors.Internal("Failed to seed categories", err)
	}
	return inserted, nil
}
