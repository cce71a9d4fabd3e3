package domain

import (
	"context"
	"time"
)

// JoinRequestStatus is the lifecycle status of a join request.
// PENDING is the only non-terminal status. REJECTED (owner's decision) and
// CANCELED (requester's withdrawal) are distinct terminal states and must
// not be conflated.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestAccepted JoinRequestStatus = "ACCEPTED"
	JoinRequestRejected JoinRequestStatus = "REJECTED"
	JoinRequestCanceled JoinRequestStatus = "CANCELED"
)

// Terminal reports whether the status permits no further transitions.
// Unknown statuses are treated as terminal so the client never offers
// actions on records it doesn't understand.
func (s JoinRequestStatus) Terminal() bool {
	return s != JoinRequestPending
}

// JoinRequestDecision is an owner's decision on a received join request.
type JoinRequestDecision string

const (
	JoinRequestDecisionAccept JoinRequestDecision = "ACCEPT"
	JoinRequestDecisionReject JoinRequestDecision = "REJECT"
)

// JoinRequest represents a user asking to join a project as a member.
// It is visible to the requester (as "sent") and to the project owner
// (as "received").
type JoinRequest struct {
	ID        string            `json:"id"`
	Requester UserRef           `json:"requester"`
	Project   ProjectRef        `json:"project"`
	Message   string            `json:"message"`
	Status    JoinRequestStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// Pending reports whether the request still awaits an owner decision.
func (r *JoinRequest) Pending() bool {
	return r.Status == JoinRequestPending
}

// JoinRequestGateway defines the join-request operations of the platform API.
type JoinRequestGateway interface {
	// ListMine returns all join requests created by the current user, any status.
	ListMine(ctx context.Context) ([]*JoinRequest, error)
	// ListForProject returns all join requests targeting the given project.
	// Only meaningful for projects the current user owns.
	ListForProject(ctx context.Context, projectID string) ([]*JoinRequest, error)
	// Create submits a new join request for the given project. The message is optional.
	Create(ctx context.Context, projectID, message string) (*JoinRequest, error)
	// Accept and Reject are owner decisions on a received request.
	Accept(ctx context.Context, requestID string) (*JoinRequest, error)
	Reject(ctx context.Context, requestID string) (*JoinRequest, error)
	// Cancel withdraws a request the current user sent.
	Cancel(ctx context.Context, requestID string) (*JoinRequest, error)
}
