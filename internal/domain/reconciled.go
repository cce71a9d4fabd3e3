package domain

import "time"

// ReconciledState is the merged view over the three request/invitation
// collections. It is an immutable snapshot: the engine replaces it as a
// whole and readers never observe a partially updated one.
//
// PendingCount is derived by NewReconciledState from the two received
// collections and is never settable or patched independently, so the badge
// cannot drift from the lists backing it.
type ReconciledState struct {
	// SentJoinRequests are all join requests created by the current user.
	SentJoinRequests []*JoinRequest
	// ReceivedInvitations are all invitations addressed to the current user.
	ReceivedInvitations []*Invitation
	// ReceivedJoinRequests is the union of join requests over all projects
	// the current user owns.
	ReceivedJoinRequests []*JoinRequest
	// PendingCount counts PENDING items across the received collections.
	PendingCount int
	// Warnings counts per-project fetches that failed and were degraded to
	// an empty result rather than failing the whole synchronize.
	Warnings int
	// SyncedAt records when this snapshot was reconciled.
	SyncedAt time.Time
}

// NewReconciledState assembles a snapshot and computes its derived fields.
// Nil slices are normalized to empty so consumers can range without checks.
func NewReconciledState(sent []*JoinRequest, invitations []*Invitation, received []*JoinRequest, warnings int, syncedAt time.Time) ReconciledState {
	if sent == nil {
		sent = []*JoinRequest{}
	}
	if invitations == nil {
		invitations = []*Invitation{}
	}
	if received == nil {
		received = []*JoinRequest{}
	}
	pending := 0
	for _, inv := range invitations {
		if inv.Pending() {
			pending++
		}
	}
	for _, req := range received {
		if req.Pending() {
			pending++
		}
	}
	return ReconciledState{
		SentJoinRequests:     sent,
		ReceivedInvitations:  invitations,
		ReceivedJoinRequests: received,
		PendingCount:         pending,
		Warnings:             warnings,
		SyncedAt:             syncedAt,
	}
}

// PendingInvitations returns the received invitations still awaiting an answer.
func (s ReconciledState) PendingInvitations() []*Invitation {
	var out []*Invitation
	for _, inv := range s.ReceivedInvitations {
		if inv.Pending() {
			out = append(out, inv)
		}
	}
	return out
}

// PendingJoinRequests returns the received join requests still awaiting a decision.
func (s ReconciledState) PendingJoinRequests() []*JoinRequest {
	var out []*JoinRequest
	for _, req := range s.ReceivedJoinRequests {
		if req.Pending() {
			out = append(out, req)
		}
	}
	return out
}

// FindSentJoinRequest returns the sent request with the given id, or nil.
func (s ReconciledState) FindSentJoinRequest(id string) *JoinRequest {
	for _, req := range s.SentJoinRequests {
		if req.ID == id {
			return req
		}
	}
	return nil
}

// FindReceivedJoinRequest returns the received request with the given id, or nil.
func (s ReconciledState) FindReceivedJoinRequest(id string) *JoinRequest {
	for _, req := range s.ReceivedJoinRequests {
		if req.ID == id {
			return req
		}
	}
	return nil
}

// FindInvitation returns the received invitation with the given id, or nil.
func (s ReconciledState) FindInvitation(id string) *Invitation {
	for _, inv := range s.ReceivedInvitations {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}
