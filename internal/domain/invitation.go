package domain

import (
	"context"
	"time"
)

// InvitationStatus is the lifecycle status of an invitation.
// Only the invited user may move it out of PENDING.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
)

// Terminal reports whether the status permits no further transitions.
func (s InvitationStatus) Terminal() bool {
	return s != InvitationPending
}

// InvitationDecision is the invited user's answer to an invitation.
type InvitationDecision string

const (
	InvitationDecisionAccept  InvitationDecision = "ACCEPT"
	InvitationDecisionDecline InvitationDecision = "DECLINE"
)

// Invitation represents a project owner or admin inviting a user to join.
// This client only deals with invitations addressed to the current user.
type Invitation struct {
	ID        string           `json:"id"`
	Inviter   UserRef          `json:"inviter"`
	Invitee   UserRef          `json:"invitee"`
	Project   ProjectRef       `json:"project"`
	Role      string           `json:"role"`
	Message   string           `json:"message"`
	Status    InvitationStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// Pending reports whether the invitation still awaits an answer.
func (i *Invitation) Pending() bool {
	return i.Status == InvitationPending
}

// InvitationGateway defines the invitation operations of the platform API.
type InvitationGateway interface {
	// ListReceived returns all invitations addressed to the current user, any status.
	ListReceived(ctx context.Context) ([]*Invitation, error)
	// Respond records the invited user's decision.
	Respond(ctx context.Context, invitationID string, decision InvitationDecision) (*Invitation, error)
}
