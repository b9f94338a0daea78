package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storyarchive/content-api/services"
)

// Claims carries the registered JWT claims plus the principal ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// TokenManager issues and verifies HS256 session tokens. Tokens are
// self-contained: validity is decided by signature and expiry alone, with no
// server-side session state. The secret is fixed at construction.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given signing secret and
// token lifetime.
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue mints a signed token asserting the principal ID, expiring TTL from now.
func (m *TokenManager) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID.String(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token string and returns the
// principal ID it asserts. A token whose signature fails is never partially
// trusted; the claims are discarded.
func (m *TokenManager) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, services.ErrTokenExpired
		}
		return uuid.Nil, services.NewDomainError(services.ErrorTypeUnauthorized, "invalid authentication token", err)
	}

	if !token.Valid {
		return uuid.Nil, services.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, services.NewDomainError(services.ErrorTypeUnauthorized, "invalid authentication token", err)
	}

	return userID, nil
}
