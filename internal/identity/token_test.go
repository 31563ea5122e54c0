package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret, subject, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestTokenVerifier_Verify(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	t.Run("valid token returns claims", func(t *testing.T) {
		signed := signToken(t, "test-secret", "ext-42", "reader@example.com")

		claims, err := verifier.Verify(signed)

		assert.NoError(t, err)
		assert.Equal(t, "ext-42", claims.Subject)
		assert.Equal(t, "reader@example.com", claims.Email)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		signed := signToken(t, "other-secret", "ext-42", "")

		claims, err := verifier.Verify(signed)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("missing subject is rejected", func(t *testing.T) {
		signed := signToken(t, "test-secret", "", "")

		claims, err := verifier.Verify(signed)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		claims, err := verifier.Verify("not-a-token")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
