package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, sub, email string, exp time.Time) string {
	t.Helper()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: email,
		Name:  "Test User",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("irrelevant-to-the-client"))
	require.NoError(t, err)
	return s
}

func TestParse(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	s := signedToken(t, "u-1", "u1@example.com", exp)

	id, err := NewTokenParser().Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "u1@example.com", id.Email)
	assert.Equal(t, "Test User", id.Name)
	assert.WithinDuration(t, exp, id.ExpiresAt, time.Second)
	assert.False(t, id.Expired(time.Now()))
}

func TestParse_ExpiredToken(t *testing.T) {
	s := signedToken(t, "u-1", "u1@example.com", time.Now().Add(-time.Minute))

	id, err := NewTokenParser().Parse(s)
	require.NoError(t, err)
	assert.True(t, id.Expired(time.Now()))
}

func TestParse_MissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{Email: "x@example.com"})
	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenParser().Parse(s)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewTokenParser().Parse("not-a-token")
	assert.Error(t, err)
}
