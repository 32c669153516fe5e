package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/models"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "a@example.com"}

	token, err := manager.Generate(user)
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, time.Hour, manager.TokenDuration())
}

func TestJWTManager_Validate(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "a@example.com"}

	t.Run("expired token", func(t *testing.T) {
		manager := NewJWTManager("test-secret", time.Hour)
		manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := manager.Generate(user)
		require.NoError(t, err)

		_, err = NewJWTManager("test-secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager("secret-a", time.Hour).Generate(user)
		require.NoError(t, err)

		_, err = NewJWTManager("secret-b", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		claims := &Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = NewJWTManager("test-secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		claims := &Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = NewJWTManager("test-secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewJWTManager("test-secret", time.Hour).Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
