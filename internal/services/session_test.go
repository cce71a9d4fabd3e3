package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collabclient/internal/domain"
)

// fakeParser implements domain.IdentityParser for tests.
type fakeParser struct {
	identity domain.Identity
	err      error
}

func (f *fakeParser) Parse(token string) (domain.Identity, error) {
	if f.err != nil {
		return domain.Identity{}, f.err
	}
	return f.identity, nil
}

func TestSession_Unauthenticated(t *testing.T) {
	s := NewSession(&fakeParser{})

	_, err := s.CurrentUserID()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = s.Token()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSession_SetToken(t *testing.T) {
	s := NewSession(&fakeParser{identity: domain.Identity{UserID: "u-1", Email: "u1@example.com"}})

	require.NoError(t, s.SetToken("raw-token"))

	id, err := s.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "raw-token", token)
}

func TestSession_ParseFailure(t *testing.T) {
	s := NewSession(&fakeParser{err: errors.New("malformed")})

	require.Error(t, s.SetToken("garbage"))

	_, err := s.CurrentUserID()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSession_ExpiredToken(t *testing.T) {
	s := NewSession(&fakeParser{identity: domain.Identity{
		UserID:    "u-1",
		ExpiresAt: time.Now().Add(time.Minute),
	}})
	require.NoError(t, s.SetToken("raw-token"))

	s.now = func() time.Time { return time.Now().Add(time.Hour) }

	_, err := s.CurrentUserID()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = s.Token()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSession_Clear(t *testing.T) {
	s := NewSession(&fakeParser{identity: domain.Identity{UserID: "u-1"}})
	require.NoError(t, s.SetToken("raw-token"))

	s.Clear()

	_, err := s.CurrentUserID()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
