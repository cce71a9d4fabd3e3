package services

import (
	"fmt"
	"sync"
	"time"

	"collabclient/internal/domain"
)

// Session holds the bearer token and identity of the currently
// authenticated user. The application's login flow (out of scope here)
// stores the token; the engine and the REST client read it. It implements
// both domain.IdentityProvider and the REST client's TokenSource.
type Session struct {
	parser domain.IdentityParser
	now    func() time.Time

	mu       sync.RWMutex
	token    string
	identity domain.Identity
}

// NewSession creates an empty, unauthenticated session.
func NewSession(parser domain.IdentityParser) *Session {
	return &Session{parser: parser, now: time.Now}
}

// SetToken installs a new access token, replacing any previous identity.
func (s *Session) SetToken(token string) error {
	identity, err := s.parser.Parse(token)
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.identity = identity
	return nil
}

// Clear drops the token and identity, returning the session to the
// unauthenticated state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = domain.Identity{}
}

// Token returns the current access token for outbound requests.
// It fails with ErrNotAuthenticated when no token is set or the token has
// expired locally.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", domain.ErrNotAuthenticated
	}
	if s.identity.Expired(s.now()) {
		return "", fmt.Errorf("access token expired: %w", domain.ErrNotAuthenticated)
	}
	return s.token, nil
}

// CurrentUserID returns the authenticated user's id, or ErrNotAuthenticated.
func (s *Session) CurrentUserID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.identity.UserID == "" {
		return "", domain.ErrNotAuthenticated
	}
	if s.identity.Expired(s.now()) {
		return "", fmt.Errorf("access token expired: %w", domain.ErrNotAuthenticated)
	}
	return s.identity.UserID, nil
}

// CurrentUser returns the full identity of the authenticated user.
func (s *Session) CurrentUser() (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.identity.UserID == "" {
		return domain.Identity{}, domain.ErrNotAuthenticated
	}
	return s.identity, nil
}
