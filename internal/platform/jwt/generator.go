package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names carried by issued tokens.
const (
	ClaimSubject   = "sub"
	ClaimEmail     = "email"
	ClaimRole      = "role"
	ClaimSessionID = "sid"
)

// generator signs HS256 tokens.
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Expiration returns the lifetime of issued tokens.
func (g *generator) Expiration() time.Duration {
	return g.expiration
}

// GenerateToken creates a signed JWT carrying the user's identity, role and session.
func (g *generator) GenerateToken(userID uint, email, role, sessionID string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		ClaimSubject:   userID,
		ClaimEmail:     email,
		ClaimRole:      role,
		ClaimSessionID: sessionID,
		"exp":          now.Add(g.expiration).Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
