package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

// Create claims the lower-cased email in user_emails and writes the user in one
// transaction, so two registrations for the same address cannot both succeed.
func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.JoinedAt.IsZero() {
		user.JoinedAt = time.Now()
	}
	user.UpdatedAt = user.JoinedAt

	emailRef := r.client.Collection(userEmailsCollection).Doc(strings.ToLower(user.Email))
	userRef := r.client.Collection(usersCollection).Doc(user.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(emailRef, map[string]interface{}{"userId": user.ID}); err != nil {
			return err
		}
		return tx.Create(userRef, newFirestoreUser(user))
	})
	if err != nil {
		if isFirestoreAlreadyExists(err) {
			return errors.Conflict("User with this email already exists")
		}
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isFirestoreNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var data firestoreUser
	if err := doc.DataTo(&data); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	return data.toEntity(doc.Ref.ID), nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.client.Collection(usersCollection).
		Where("email", "==", strings.ToLower(email)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get user", err)
	}

	var data firestoreUser
	if err := doc.DataTo(&data); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	return data.toEntity(doc.Ref.ID), nil
}

// Update rewrites profile fields. The email is the identity key and is not changed here.
func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	_, err := r.client.Collection(usersCollection).Doc(user.ID).Update(ctx, []firestore.Update{
		{Path: "passwordHash", Value: user.PasswordHash},
		{Path: "username", Value: user.Username},
		{Path: "fullName", Value: user.FullName},
		{Path: "phone", Value: user.Phone},
		{Path: "address", Value: user.Address},
		{Path: "avatarUrl", Value: user.AvatarURL},
		{Path: "updatedAt", Value: user.UpdatedAt},
	})
	if err != nil {
		if isFirestoreNotFound(err) {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user", err)
	}
	return nil
}
