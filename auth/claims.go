// Package auth holds the bearer-token state shared by SDK clients and helpers
// for inspecting the JWTs the content API issues.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the payload of a content API user JWT.
//
// The SDK never verifies signatures; the server does. Claims are decoded only
// so callers can show who is signed in and when the session lapses.
type Claims struct {
	UserID int `json:"id"`

	jwt.RegisteredClaims
}

// ParseClaims decodes token without verifying its signature.
func ParseClaims(token string) (Claims, error) {
	token = stripBearer(token)
	if token == "" {
		return Claims{}, errors.New("sdk/auth: token required")
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is at or before now. Tokens
// without an exp claim never expire.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// ExpiresIn returns the time left before expiry, or zero when expired or unset.
func (c Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

func stripBearer(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
