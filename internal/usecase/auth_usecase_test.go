package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofinds/pkg/errors"
)

func TestRegisterIssuesToken(t *testing.T) {
	f := newFixture(t)

	result, err := f.auth.Register(context.Background(), RegisterInput{
		Email:    "  Ana@Example.COM ",
		Password: "secret123",
		Username: "ana",
		FullName: "Ana Lima",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.Equal(t, "token-"+result.User.ID, result.Token)
	assert.NotEqual(t, "secret123", result.User.PasswordHash)
	assert.False(t, result.User.JoinedAt.IsZero())
}

func TestRegisterDuplicateEmailKeepsFirstUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.auth.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secret123", Username: "first"})
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "DUP@example.com", Password: "other123", Username: "second"})
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Contains(t, err.Error(), "User with this email already exists")

	stored, err := f.repos.Users.GetByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, stored.ID)
	assert.Equal(t, "first", stored.Username)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "bob")

	result, err := f.auth.Login(ctx, "BOB@example.com", "password-bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", result.User.Username)
	assert.NotEmpty(t, result.Token)

	_, err = f.auth.Login(ctx, "bob@example.com", "wrong")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	_, err = f.auth.Login(ctx, "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "User not found")
}
