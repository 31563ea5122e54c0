// Package identity integrates with the external identity provider:
// verifying bearer tokens it issues and listing its user accounts
// through the admin API for synchronization.
package identity

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the JWT claims the identity provider places in its
// session tokens. Subject carries the external user identifier.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates identity provider session tokens.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier with the provider's shared secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify validates a token and returns its claims.
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject missing")
	}
	return claims, nil
}
