package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// Identity is the authenticated caller carried by a valid token
type Identity struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// TokenManager issues and verifies HS256 bearer tokens with a fixed lifetime
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for identity that expires after the manager's TTL
func (m *TokenManager) Issue(identity Identity) (string, error) {
	now := m.now()
	claims := &models.JwtCustomClaims{
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies signature and expiry. Every failure is reported as unauthenticated.
func (m *TokenManager) Authenticate(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, apperr.Unauthenticated()
	}

	claims := &models.JwtCustomClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		unauth := apperr.Unauthenticated()
		unauth.Err = err
		return nil, unauth
	}
	// jwt/v4 accepts tokens without exp, but every token we issue carries one
	if claims.ExpiresAt == nil || claims.Email == "" {
		return nil, apperr.Unauthenticated()
	}

	return &Identity{Email: claims.Email, Role: claims.Role}, nil
}
