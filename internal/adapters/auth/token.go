package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"collabclient/internal/domain"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenParser struct{}

// NewTokenParser returns an IdentityParser that reads the platform's JWT
// access tokens.
func NewTokenParser() domain.IdentityParser {
	return tokenParser{}
}

// Parse extracts the user identity from an access token without verifying
// the signature. The client holds no signing secret; verification is the
// server's job. This parse only exists so the engine can scope its fetches
// to the right user and reject obviously expired sessions early.
func (tokenParser) Parse(token string) (domain.Identity, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return domain.Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("token has no subject claim")
	}
	id := domain.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
