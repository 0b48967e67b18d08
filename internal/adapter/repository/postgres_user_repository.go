package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, email, password_hash, COALESCE(username, ''), COALESCE(full_name, ''),
	COALESCE(phone, ''), COALESCE(address, ''), COALESCE(avatar_url, ''), created_at, updated_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.JoinedAt.IsZero() {
		user.JoinedAt = time.Now()
	}
	user.UpdatedAt = user.JoinedAt

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, username, full_name, phone, address, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Email, user.PasswordHash, user.Username, user.FullName,
		user.Phone, user.Address, user.AvatarURL, user.JoinedAt, user.UpdatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return errors.Conflict("User with this email already exists")
		}
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *postgresUserRepository) Update(ctx context.Context, user *entity.User) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET username = $2, full_name = $3, phone = $4, address = $5, avatar_url = $6,
		    password_hash = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		user.ID, user.Username, user.FullName, user.Phone, user.Address, user.AvatarURL, user.PasswordHash,
	).Scan(&user.JoinedAt, &user.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Username, &user.FullName,
		&user.Phone, &user.Address, &user.AvatarURL, &user.JoinedAt, &user.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}
	return &user, nil
}
