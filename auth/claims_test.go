package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestParseClaims(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tok := signedToken(t, Claims{
		UserID: 17,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(30 * 24 * time.Hour)),
		},
	})

	claims, err := ParseClaims("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, 17, claims.UserID)
	assert.False(t, claims.Expired(issued.Add(time.Hour)))
	assert.True(t, claims.Expired(issued.Add(31*24*time.Hour)))
	assert.Equal(t, 29*24*time.Hour, claims.ExpiresIn(issued.Add(24*time.Hour)))
	assert.Zero(t, claims.ExpiresIn(issued.Add(40*24*time.Hour)))
}

func TestParseClaimsWithoutExpiry(t *testing.T) {
	claims, err := ParseClaims(signedToken(t, Claims{UserID: 3}))
	require.NoError(t, err)
	assert.False(t, claims.Expired(time.Now().Add(100*365*24*time.Hour)))
	assert.Zero(t, claims.ExpiresIn(time.Now()))
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	_, err := ParseClaims("")
	assert.Error(t, err)
	_, err = ParseClaims("not-a-jwt")
	assert.Error(t, err)
}
