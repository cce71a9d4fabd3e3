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

const limiterKeyJoinRequests = "joinRequests"

type joinRequestGateway struct {
	c *Client
}

// NewJoinRequestGateway returns the JoinRequestGateway backed by the
// platform's join-request endpoints.
func NewJoinRequestGateway(c *Client) domain.JoinRequestGateway {
	return &joinRequestGateway{c: c}
}

// userDTO tolerates the user shapes the API produces.
type userDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

func (d userDTO) toDomain() domain.UserRef {
	name := d.Name
	if name == "" {
		name = d.DisplayName
	}
	return domain.UserRef{ID: d.ID, Name: name, Email: d.Email}
}

// projectDTO tolerates both the nested owner object and the flattened
// owner_id field.
type projectDTO struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Name    string   `json:"name"`
	Owner   *userDTO `json:"owner"`
	OwnerID string   `json:"owner_id"`
}

func (d projectDTO) toDomain() domain.ProjectRef {
	title := d.Title
	if title == "" {
		title = d.Name
	}
	ownerID := d.OwnerID
	if ownerID == "" && d.Owner != nil {
		ownerID = d.Owner.ID
	}
	return domain.ProjectRef{ID: d.ID, Title: title, OwnerID: ownerID}
}

// joinRequestDTO is the wire shape of a join request. Some endpoints nest
// the requester and project objects, others flatten their ids.
type joinRequestDTO struct {
	ID        string      `json:"id"`
	Requester *userDTO    `json:"requester"`
	User      *userDTO    `json:"user"`
	Project   *projectDTO `json:"project"`
	ProjectID string      `json:"project_id"`
	Message   string      `json:"message"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

func (d joinRequestDTO) toDomain() *domain.JoinRequest {
	req := &domain.JoinRequest{
		ID:        d.ID,
		Message:   d.Message,
		Status:    domain.JoinRequestStatus(strings.ToUpper(strings.TrimSpace(d.Status))),
		CreatedAt: d.CreatedAt,
	}
	switch {
	case d.Requester != nil:
		req.Requester = d.Requester.toDomain()
	case d.User != nil:
		req.Requester = d.User.toDomain()
	}
	if d.Project != nil {
		req.Project = d.Project.toDomain()
	} else {
		req.Project = domain.ProjectRef{ID: d.ProjectID}
	}
	return req
}

func decodeJoinRequests(items []json.RawMessage, op string) ([]*domain.JoinRequest, error) {
	out := make([]*domain.JoinRequest, 0, len(items))
	for _, item := range items {
		var dto joinRequestDTO
		if err := json.Unmarshal(item, &dto); err != nil {
			return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("decode join request: %w", err)}
		}
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (g *joinRequestGateway) ListMine(ctx context.Context) ([]*domain.JoinRequest, error) {
	const op = "joinRequests.listMine"
	items, err := g.c.listPages(ctx, op, limiterKeyJoinRequests, "/join-requests/mine", nil, "requests")
	if err != nil {
		return nil, err
	}
	return decodeJoinRequests(items, op)
}

func (g *joinRequestGateway) ListForProject(ctx context.Context, projectID string) ([]*domain.JoinRequest, error) {
	const op = "joinRequests.listForProject"
	path := "/projects/" + url.PathEscape(projectID) + "/join-requests"
	items, err := g.c.listPages(ctx, op, limiterKeyJoinRequests, path, nil, "requests")
	if err != nil {
		return nil, err
	}
	return decodeJoinRequests(items, op)
}

func (g *joinRequestGateway) Create(ctx context.Context, projectID, message string) (*domain.JoinRequest, error) {
	const op = "joinRequests.create"
	body := map[string]string{"project_id": projectID}
	if message != "" {
		body["message"] = message
	}
	raw, err := g.c.do(ctx, op, limiterKeyJoinRequests, http.MethodPost, "/join-requests", nil, body)
	if err != nil {
		return nil, err
	}
	return decodeOneJoinRequest(raw, op)
}

func (g *joinRequestGateway) Accept(ctx context.Context, requestID string) (*domain.JoinRequest, error) {
	return g.mutate(ctx, "joinRequests.accept", requestID, "accept")
}

func (g *joinRequestGateway) Reject(ctx context.Context, requestID string) (*domain.JoinRequest, error) {
	return g.mutate(ctx, "joinRequests.reject", requestID, "reject")
}

func (g *joinRequestGateway) Cancel(ctx context.Context, requestID string) (*domain.JoinRequest, error) {
	return g.mutate(ctx, "joinRequests.cancel", requestID, "cancel")
}

func (g *joinRequestGateway) mutate(ctx context.Context, op, requestID, action string) (*domain.JoinRequest, error) {
	path := "/join-requests/" + url.PathEscape(requestID) + "/" + action
	raw, err := g.c.do(ctx, op, limiterKeyJoinRequests, http.MethodPost, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOneJoinRequest(raw, op)
}

func decodeOneJoinRequest(raw []byte, op string) (*domain.JoinRequest, error) {
	item, err := decodeItem(raw, "request")
	if err != nil {
		return nil, &domain.GatewayError{Op: op, Err: err}
	}
	var dto joinRequestDTO
	if err := json.Unmarshal(item, &dto); err != nil {
		return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("decode join request: %w", err)}
	}
	if dto.ID == "" {
		return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("response has no request id")}
	}
	return dto.toDomain(), nil
}
