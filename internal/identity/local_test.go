package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalStore_CreateUserAndSignIn(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore("0123456789abcdef0123456789abcdef", time.Hour)

	t.Run("Success", func(t *testing.T) {
		uid, err := store.CreateUser(ctx, "ana@example.com", "secret123", "Ana Macamo")
		assert.NoError(t, err)
		assert.NotEmpty(t, uid)

		token, err := store.SignIn(ctx, "ana@example.com", "secret123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		resolved, err := store.VerifyToken(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, uid, resolved)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := store.CreateUser(ctx, "Ana@Example.com", "other", "Ana")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := store.SignIn(ctx, "ana@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := store.SignIn(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLocalStore_VerifyToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Garbage", func(t *testing.T) {
		store := NewLocalStore("0123456789abcdef0123456789abcdef", time.Hour)
		_, err := store.VerifyToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		store := NewLocalStore("0123456789abcdef0123456789abcdef", -time.Minute)
		_, err := store.CreateUser(ctx, "ana@example.com", "secret123", "Ana")
		assert.NoError(t, err)

		token, err := store.SignIn(ctx, "ana@example.com", "secret123")
		assert.NoError(t, err)

		_, err = store.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		issuer := NewLocalStore("0123456789abcdef0123456789abcdef", time.Hour)
		verifier := NewLocalStore("ffffffffffffffffffffffffffffffff", time.Hour)

		_, err := issuer.CreateUser(ctx, "ana@example.com", "secret123", "Ana")
		assert.NoError(t, err)
		token, err := issuer.SignIn(ctx, "ana@example.com", "secret123")
		assert.NoError(t, err)

		_, err = verifier.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLocalStore_SignOut(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore("0123456789abcdef0123456789abcdef", time.Hour)

	_, err := store.CreateUser(ctx, "ana@example.com", "secret123", "Ana")
	assert.NoError(t, err)
	token, err := store.SignIn(ctx, "ana@example.com", "secret123")
	assert.NoError(t, err)

	assert.NoError(t, store.SignOut(ctx, token))
	assert.ErrorIs(t, store.SignOut(ctx, "bogus"), ErrInvalidToken)
}
