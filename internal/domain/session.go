package domain

import "time"

// Identity is the authenticated user as carried by the platform's access
// token. Authentication itself is out of scope; the engine only consumes
// the resulting identity.
type Identity struct {
	UserID    string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token backing this identity has expired.
// An identity without an expiry never expires locally; the server remains
// the authority either way.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// IdentityParser extracts an Identity from an access token.
type IdentityParser interface {
	Parse(token string) (Identity, error)
}

// IdentityProvider supplies the current user's id to operations that need
// it. Implementations return ErrNotAuthenticated when no usable identity
// is present.
type IdentityProvider interface {
	CurrentUserID() (string, error)
}
