package auth

import (
	"context"
	"testing"
	"time"

	"blogicum/app/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute)

	t.Run("round trip", func(t *testing.T) {
		token, expires, err := issuer.Generate(42, "leo")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expires, 2*time.Second)

		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, 42, claims.UserID())
		assert.Equal(t, "leo", claims.Username)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := NewTokenIssuer("other-secret", time.Minute).Generate(1, "x")
		require.NoError(t, err)
		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewTokenIssuer("test-secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := old.Generate(1, "x")
		require.NoError(t, err)
		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no secret", func(t *testing.T) {
		_, _, err := NewTokenIssuer("", time.Minute).Generate(1, "x")
		assert.ErrorIs(t, err, ErrNoSecret)
	})
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, UserFrom(ctx))
	assert.Zero(t, UserIDFrom(ctx))

	ctx = WithUser(ctx, &models.User{ID: 7, Username: "leo"})
	assert.Equal(t, "leo", UserFrom(ctx).Username)
	assert.Equal(t, 7, UserIDFrom(ctx))
}
