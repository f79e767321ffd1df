package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dhruv/estate-hub/backend/internal/models"
)

// TokenTTL is how long an issued bearer token stays valid. There is no
// server-side revocation; expiry is the only lifecycle event.
const TokenTTL = 7 * 24 * time.Hour

// Claims carries the user id a bearer token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenManager issues and verifies HMAC-signed bearer tokens.
type TokenManager struct {
	secret string
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: secret}
}

// Issue signs a token binding userID, expiring TokenTTL from now.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id a token was issued for. Malformed, forged
// and expired tokens all come back as ErrInvalidToken; callers get no
// way to tell them apart.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", models.ErrInvalidToken
	}
	return claims.UserID, nil
}
