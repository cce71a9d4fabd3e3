package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"collabclient/internal/domain"
)

const limiterKeyInvitations = "invitations"

type invitationGateway struct {
	c *Client
}

// NewInvitationGateway returns the InvitationGateway backed by the
// platform's invitation endpoints.
func NewInvitationGateway(c *Client) domain.InvitationGateway {
	return &invitationGateway{c: c}
}

type invitationDTO struct {
	ID        string      `json:"id"`
	Inviter   *userDTO    `json:"inviter"`
	Sender    *userDTO    `json:"sender"`
	Invitee   *userDTO    `json:"invitee"`
	Project   *projectDTO `json:"project"`
	ProjectID string      `json:"project_id"`
	Role      string      `json:"role"`
	Message   string      `json:"message"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

func (d invitationDTO) toDomain() *domain.Invitation {
	inv := &domain.Invitation{
		ID:        d.ID,
		Role:      d.Role,
		Message:   d.Message,
		Status:    domain.InvitationStatus(strings.ToUpper(strings.TrimSpace(d.Status))),
		CreatedAt: d.CreatedAt,
	}
	switch {
	case d.Inviter != nil:
		inv.Inviter = d.Inviter.toDomain()
	case d.Sender != nil:
		inv.Inviter = d.Sender.toDomain()
	}
	if d.Invitee != nil {
		inv.Invitee = d.Invitee.toDomain()
	}
	if d.Project != nil {
		inv.Project = d.Project.toDomain()
	} else {
		inv.Project = domain.ProjectRef{ID: d.ProjectID}
	}
	return inv
}

func (g *invitationGateway) ListReceived(ctx context.Context) ([]*domain.Invitation, error) {
	const op = "invitations.listReceived"
	items, err := g.c.listPages(ctx, op, limiterKeyInvitations, "/invitations/received", nil, "invitations")
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Invitation, 0, len(items))
	for _, item := range items {
		var dto invitationDTO
		if err := json.Unmarshal(item, &dto); err != nil {
			return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("decode invitation: %w", err)}
		}
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (g *invitationGateway) Respond(ctx context.Context, invitationID string, decision domain.InvitationDecision) (*domain.Invitation, error) {
	const op = "invitations.respond"
	path := "/invitations/" + url.PathEscape(invitationID) + "/respond"
	body := map[string]string{"decision": string(decision)}
	raw, err := g.c.do(ctx, op, limiterKeyInvitations, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	item, err := decodeItem(raw, "invitation")
	if err != nil {
		return nil, &domain.GatewayError{Op: op, Err: err}
	}
	var dto invitationDTO
	if err := json.Unmarshal(item, &dto); err != nil {
		return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("decode invitation: %w", err)}
	}
	if dto.ID == "" {
		return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("response has no invitation id")}
	}
	return dto.toDomain(), nil
}
