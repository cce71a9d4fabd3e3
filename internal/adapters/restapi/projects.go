package restapi

import (
	"context"
	"encoding/json"
	"fmt"

	"collabclient/internal/domain"
)

const limiterKeyProjects = "projects"

type projectGateway struct {
	c *Client
}

// NewProjectGateway returns the ProjectGateway backed by the platform's
// project endpoints.
func NewProjectGateway(c *Client) domain.ProjectGateway {
	return &projectGateway{c: c}
}

func (g *projectGateway) ListMine(ctx context.Context) ([]*domain.ProjectRef, error) {
	const op = "projects.listMine"
	items, err := g.c.listPages(ctx, op, limiterKeyProjects, "/projects/mine", nil, "projects")
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ProjectRef, 0, len(items))
	for _, item := range items {
		var dto projectDTO
		if err := json.Unmarshal(item, &dto); err != nil {
			return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("decode project: %w", err)}
		}
		ref := dto.toDomain()
		out = append(out, &ref)
	}
	return out, nil
}
