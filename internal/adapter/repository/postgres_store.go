package repository

import (
	stderrors "errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecofinds/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// NewPostgresRepositories returns repositories backed by the relational schema
// in infrastructure/database/schema.sql.
func NewPostgresRepositories(pool *pgxpool.Pool) repository.Repositories {
	return repository.Repositories{
		Users:      &postgresUserRepository{pool: pool},
		Categories: &postgresCategoryRepository{pool: pool},
		Products:   &postgresProductRepository{pool: pool},
		Carts:      &postgresCartRepository{pool: pool},
		Orders:     &postgresOrderRepository{pool: pool},
	}
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isNoRows(err error) bool {
	return stderrors.Is(err, pgx.ErrNoRows)
}

// likePattern escapes LIKE wildcards so user input only ever matches literally.
func likePattern(query string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(query)) + "%"
}
