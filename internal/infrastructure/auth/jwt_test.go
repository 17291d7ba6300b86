package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synvya/retail-backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-at-least-32-characters",
		Expiration: expiration,
		Issuer:     "retail-backend-test",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	t.Run("Generates valid token", func(t *testing.T) {
		session, err := svc.GenerateToken("MLMERCHANT1")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "Bearer", session.TokenType)
		assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
	})

	t.Run("Rejects empty merchant ID", func(t *testing.T) {
		_, err := svc.GenerateToken("")
		assert.ErrorIs(t, err, ErrMissingMerchantID)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	t.Run("Round trip", func(t *testing.T) {
		session, err := svc.GenerateToken("MLMERCHANT1")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "MLMERCHANT1", claims.MerchantID)
		assert.Equal(t, "MLMERCHANT1", claims.Subject)
		assert.Equal(t, "retail-backend-test", claims.Issuer)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Rejects expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		session, err := expired.GenerateToken("MLMERCHANT1")
		require.NoError(t, err)

		_, err = expired.ValidateToken(session.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Rejects token signed with different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:     "another-secret-another-secret-123",
			Expiration: time.Hour,
			Issuer:     "retail-backend-test",
		})
		session, err := other.GenerateToken("MLMERCHANT1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(session.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
