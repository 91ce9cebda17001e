//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"salon-scheduler/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-identity-tokens"

func TestValidateToken(t *testing.T) {
	svc := jwt.NewService(secret, "salon-idp")
	userID, tenantID := uuid.New(), uuid.New()

	t.Run("round trip keeps the tenant binding", func(t *testing.T) {
		raw, err := svc.GenerateToken(userID, tenantID, "staff", time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(raw)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, tenantID, claims.TenantID)
		assert.Equal(t, "staff", claims.Role)
	})

	t.Run("small clock skew is tolerated", func(t *testing.T) {
		raw, err := svc.GenerateToken(userID, tenantID, "staff", -5*time.Second)
		require.NoError(t, err)
		_, err = svc.ValidateToken(raw)
		require.NoError(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		raw, err := svc.GenerateToken(userID, tenantID, "staff", -time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(raw)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		raw, err := jwt.NewService(secret, "someone-else").GenerateToken(userID, tenantID, "staff", time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(raw)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("missing tenant", func(t *testing.T) {
		raw, err := svc.GenerateToken(userID, uuid.Nil, "staff", time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(raw)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		raw, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, jwt.Claims{
			UserID:   userID,
			TenantID: tenantID,
			Role:     "admin",
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "salon-idp",
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateToken(raw)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		raw, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
			UserID:           userID,
			TenantID:         tenantID,
			Role:             "staff",
			RegisteredClaims: gojwt.RegisteredClaims{Issuer: "salon-idp"},
		}).SignedString([]byte(secret))
		require.NoError(t, err)
		_, err = svc.ValidateToken(raw)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
