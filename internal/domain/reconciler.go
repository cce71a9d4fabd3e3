package domain

import "context"

// Reconciler owns the ReconciledState and mediates all read and mutation
// traffic for requests and invitations. Every mutation re-synchronizes on
// success rather than patching state locally. All methods return errors as
// values; nothing panics across the view boundary.
type Reconciler interface {
	// Synchronize fetches all three collections and atomically replaces the
	// state. Concurrent calls are serialized last-started-wins: a stale
	// in-flight result is discarded, never published.
	Synchronize(ctx context.Context) error
	// Refresh is the view layer's explicit re-fetch trigger.
	Refresh(ctx context.Context) error
	// State returns the current fully-reconciled snapshot.
	State() ReconciledState
	// Subscribe registers for state replacements. The returned cancel func
	// unregisters. Slow consumers may miss intermediate snapshots but always
	// observe the latest published one.
	Subscribe() (<-chan ReconciledState, func())

	RespondToInvitation(ctx context.Context, invitationID string, decision InvitationDecision) error
	RespondToJoinRequest(ctx context.Context, requestID string, decision JoinRequestDecision) error
	CancelSentJoinRequest(ctx context.Context, requestID string) error
	SubmitJoinRequest(ctx context.Context, projectID, message string) error
}
