// Package collabclient is the client-side engine for the collaboration
// platform's join requests and invitations. It merges the user's sent
// requests, received invitations, and per-owned-project received requests
// into one consistent state and keeps that state correct across mutations.
package collabclient

import (
	"log/slog"

	"collabclient/config"
	"collabclient/internal/adapters/auth"
	"collabclient/internal/adapters/restapi"
	"collabclient/internal/domain"
	"collabclient/internal/ratelimit"
	"collabclient/internal/services"
)

// Client is the assembled SDK: a session to install the access token into
// and the reconciliation engine that views read from and mutate through.
type Client struct {
	Session *services.Session
	Engine  domain.Reconciler
}

// New wires the full client from configuration. A nil logger falls back to
// the environment-configured default.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = config.NewLogger()
	}
	session := services.NewSession(auth.NewTokenParser())
	limiter := ratelimit.New(cfg.APIRPS, cfg.APIBurst)
	rest := restapi.NewClient(cfg.APIBaseURL, session, limiter, logger, nil)

	engine := services.NewReconciliationEngine(
		session,
		restapi.NewJoinRequestGateway(rest),
		restapi.NewInvitationGateway(rest),
		restapi.NewProjectGateway(rest),
		logger,
		cfg.APITimeout,
	)
	return &Client{Session: session, Engine: engine}
}
