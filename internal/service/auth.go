package service

import (
	"fmt"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the custom claims embedded in admin access tokens. Tokens
// are issued by the identity provider; this service only validates.
type JWTClaims struct {
	Sub  string `json:"sub"`
	Rol  string `json:"rol"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenVerifier validates admin access tokens on every protected route.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for the shared HS256 secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// ValidateAccessToken parses and validates a bearer token.
func (v *TokenVerifier) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "Token invalido o expirado"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "Token invalido"}
	}

	if claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "Tipo de token invalido"}
	}

	return claims, nil
}
