//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"resource-hub/internal/domain/user"
	"resource-hub/internal/pkg/jwt"
	"resource-hub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-with-enough-length"

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService(testSecret, time.Hour)
	validator := usecase.NewTokenValidator(svc)

	t.Run("valid token yields the actor", func(t *testing.T) {
		id := uuid.New()
		token, err := svc.GenerateToken(id, user.RoleStaff)
		require.NoError(t, err)

		actor, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.Actor{ID: id, Role: user.RoleStaff}, actor)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewService(testSecret, -time.Minute)
		token, err := expired.GenerateToken(uuid.New(), user.RoleStudent)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		token, err := jwt.NewService("another-secret-key-of-enough-len", time.Hour).GenerateToken(uuid.New(), user.RoleAdmin)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), user.Role("janitor"))
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("issuer is enforced when configured", func(t *testing.T) {
		strict := usecase.NewTokenValidator(jwt.NewService(testSecret, time.Hour, jwt.WithIssuer("identity")))

		foreign, err := jwt.NewService(testSecret, time.Hour, jwt.WithIssuer("elsewhere")).GenerateToken(uuid.New(), user.RoleStaff)
		require.NoError(t, err)
		_, err = strict.ValidateToken(foreign)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)

		own, err := jwt.NewService(testSecret, time.Hour, jwt.WithIssuer("identity")).GenerateToken(uuid.New(), user.RoleStaff)
		require.NoError(t, err)
		_, err = strict.ValidateToken(own)
		assert.NoError(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := validator.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
