package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAdminToken("admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := ParseAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin@example.com",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
	})
	expired, err := claims.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseAdminToken(expired)
	assert.Error(t, err)
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateAdminToken("admin@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "a-different-secret")
	_, err = ParseAdminToken(token)
	assert.Error(t, err)
}

func TestParseAdminTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseAdminToken("not-a-token")
	assert.Error(t, err)
}

func TestParseAdminTokenRejectsEmptySubject(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := claims.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseAdminToken(token)
	assert.Error(t, err)
}
