package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type mongoUserRepository struct {
	users *mongo.Collection
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.JoinedAt.IsZero() {
		user.JoinedAt = time.Now()
	}
	user.UpdatedAt = user.JoinedAt

	if _, err := r.users.InsertOne(ctx, newMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("User with this email already exists")
		}
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *mongoUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	var updated mongoUser
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"password_hash": user.PasswordHash,
			"username":      user.Username,
			"full_name":     user.FullName,
			"phone":         user.Phone,
			"address":       user.Address,
			"avatar_url":    user.AvatarURL,
			"updated_at":    user.UpdatedAt,
		}},
	).Decode(&updated)
	if err != nil {
		if isNoDocuments(err) {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user", err)
	}

	user.JoinedAt = updated.JoinedAt
	return nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc mongoUser
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}
	return doc.toEntity(), nil
}
