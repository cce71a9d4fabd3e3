// Package views builds the tab view models consumed by the presentation
// layer. Everything here is a pure function of a ReconciledState snapshot:
// no I/O, no mutation.
package views

import "collabclient/internal/domain"

// ReceivedTabModel backs the "received" tab: invitations addressed to the
// user plus join requests for projects they own. Badge mirrors the
// snapshot's PendingCount and is never computed independently.
type ReceivedTabModel struct {
	PendingInvitations   []*domain.Invitation
	ResolvedInvitations  []*domain.Invitation
	PendingJoinRequests  []*domain.JoinRequest
	ResolvedJoinRequests []*domain.JoinRequest
	Badge                int
	Degraded             bool
}

// ReceivedTab partitions the received collections into pending and resolved.
// Degraded is set when the snapshot was reconciled with per-project fetch
// failures, so the view can hint that the list may be incomplete.
func ReceivedTab(s domain.ReconciledState) ReceivedTabModel {
	m := ReceivedTabModel{
		Badge:    s.PendingCount,
		Degraded: s.Warnings > 0,
	}
	for _, inv := range s.ReceivedInvitations {
		if inv.Pending() {
			m.PendingInvitations = append(m.PendingInvitations, inv)
		} else {
			m.ResolvedInvitations = append(m.ResolvedInvitations, inv)
		}
	}
	for _, req := range s.ReceivedJoinRequests {
		if req.Pending() {
			m.PendingJoinRequests = append(m.PendingJoinRequests, req)
		} else {
			m.ResolvedJoinRequests = append(m.ResolvedJoinRequests, req)
		}
	}
	return m
}

// SentTabItem is one row of the "sent" tab. Only PENDING requests are
// cancelable; sent requests never contribute to the pending badge.
type SentTabItem struct {
	Request    *domain.JoinRequest
	Cancelable bool
}

// SentTab lists the user's own join requests, any status, newest state as
// reconciled.
func SentTab(s domain.ReconciledState) []SentTabItem {
	items := make([]SentTabItem, 0, len(s.SentJoinRequests))
	for _, req := range s.SentJoinRequests {
		items = append(items, SentTabItem{Request: req, Cancelable: req.Pending()})
	}
	return items
}

// OwnerTabModel backs the per-project view of received join requests.
type OwnerTabModel struct {
	ProjectID string
	Pending   []*domain.JoinRequest
	Resolved  []*domain.JoinRequest
}

// OwnerTab filters the received join requests down to a single owned project.
func OwnerTab(s domain.ReconciledState, projectID string) OwnerTabModel {
	m := OwnerTabModel{ProjectID: projectID}
	for _, req := range s.ReceivedJoinRequests {
		if req.Project.ID != projectID {
			continue
		}
		if req.Pending() {
			m.Pending = append(m.Pending, req)
		} else {
			m.Resolved = append(m.Resolved, req)
		}
	}
	return m
}

// JoinRequestStatusLabel maps a join request status to its display label.
// REJECTED and CANCELED are distinct outcomes with different actors and
// must not share a label.
func JoinRequestStatusLabel(s domain.JoinRequestStatus) string {
	switch s {
	case domain.JoinRequestPending:
		return "Pending"
	case domain.JoinRequestAccepted:
		return "Accepted"
	case domain.JoinRequestRejected:
		return "Rejected"
	case domain.JoinRequestCanceled:
		return "Canceled"
	default:
		return string(s)
	}
}

// InvitationStatusLabel maps an invitation status to its display label.
func InvitationStatusLabel(s domain.InvitationStatus) string {
	switch s {
	case domain.InvitationPending:
		return "Pending"
	case domain.InvitationAccepted:
		return "Accepted"
	case domain.InvitationDeclined:
		return "Declined"
	default:
		return string(s)
	}
}
