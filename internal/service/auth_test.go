package service

import (
	"context"
	"testing"
	"time"

	"toolrental-backend/internal/config"
	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest(t *testing.T) (AuthService, security.TokenManager) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	svc := NewAuthService([]config.AdminAccount{
		{Email: "admin@example.com", Name: "Admin", PasswordHash: string(hash)},
	}, tokens)
	return svc, tokens
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newAuthServiceForTest(t)

	t.Run("Success", func(t *testing.T) {
		token, expiresAt, admin, err := svc.Login(ctx, " Admin@Example.com ", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, int32(1), admin.ID)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.True(t, claims.HasRole(security.RoleAdmin))
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "admin@example.com", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown admin", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "who@example.com", "s3cret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	admin, err := svc.Me(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Admin", admin.Name)

	_, err = svc.Me(context.Background(), "removed@example.com")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
