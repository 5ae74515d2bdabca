// Package jwt issues and validates the bearer tokens the HTTP frontend
// uses to authenticate a resolved user across requests. This is an
// ambient HTTP-session concern distinct from the HMAC-signed pair
// tokens the reconciler issues.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/HappyLadySauce/errors"
)

// Claims carries the resolved user identity across a session.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for userID valid for expiration.
func GenerateToken(userID uuid.UUID, secret string, expiration time.Duration) (string, error) {
	if secret == "" {
		return "", errors.WithCode(code.ErrServiceInvalidJWTSecret, "jwt secret must not be empty")
	}
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates tokenString and recovers its Claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.WithCode(code.ErrExpired, "token expired")
		}
		return nil, errors.WithCode(code.ErrTokenInvalid, "%s", err.Error())
	}
	if !token.Valid {
		return nil, errors.WithCode(code.ErrTokenInvalid, "token invalid")
	}
	return claims, nil
}
