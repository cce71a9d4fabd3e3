package domain

import "context"

// ProjectGateway lists the projects the current user owns or belongs to.
// The engine filters the result down to owned projects itself.
type ProjectGateway interface {
	ListMine(ctx context.Context) ([]*ProjectRef, error)
}

// OwnedBy reports whether the project is owned by the given user.
func (p *ProjectRef) OwnedBy(userID string) bool {
	return p.OwnerID != "" && p.OwnerID == userID
}
