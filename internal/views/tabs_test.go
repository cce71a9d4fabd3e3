package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"collabclient/internal/domain"
)

func snapshot() domain.ReconciledState {
	return domain.NewReconciledState(
		[]*domain.JoinRequest{
			{ID: "s1", Status: domain.JoinRequestPending, Project: domain.ProjectRef{ID: "p9"}},
			{ID: "s2", Status: domain.JoinRequestCanceled, Project: domain.ProjectRef{ID: "p9"}},
		},
		[]*domain.Invitation{
			{ID: "i1", Status: domain.InvitationPending},
			{ID: "i2", Status: domain.InvitationDeclined},
		},
		[]*domain.JoinRequest{
			{ID: "r1", Status: domain.JoinRequestPending, Project: domain.ProjectRef{ID: "p1"}},
			{ID: "r2", Status: domain.JoinRequestRejected, Project: domain.ProjectRef{ID: "p1"}},
			{ID: "r3", Status: domain.JoinRequestPending, Project: domain.ProjectRef{ID: "p2"}},
		},
		1, time.Now(),
	)
}

func TestReceivedTab(t *testing.T) {
	m := ReceivedTab(snapshot())

	assert.Len(t, m.PendingInvitations, 1)
	assert.Len(t, m.ResolvedInvitations, 1)
	assert.Len(t, m.PendingJoinRequests, 2)
	assert.Len(t, m.ResolvedJoinRequests, 1)
	assert.Equal(t, 3, m.Badge, "badge mirrors PendingCount")
	assert.True(t, m.Degraded)
}

func TestSentTab(t *testing.T) {
	items := SentTab(snapshot())

	assert.Len(t, items, 2)
	assert.True(t, items[0].Cancelable)
	assert.False(t, items[1].Cancelable, "terminal requests are not cancelable")
}

func TestOwnerTab(t *testing.T) {
	m := OwnerTab(snapshot(), "p1")

	assert.Len(t, m.Pending, 1)
	assert.Len(t, m.Resolved, 1)

	empty := OwnerTab(snapshot(), "p3")
	assert.Empty(t, empty.Pending)
	assert.Empty(t, empty.Resolved)
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Rejected", JoinRequestStatusLabel(domain.JoinRequestRejected))
	assert.Equal(t, "Canceled", JoinRequestStatusLabel(domain.JoinRequestCanceled))
	assert.NotEqual(t,
		JoinRequestStatusLabel(domain.JoinRequestRejected),
		JoinRequestStatusLabel(domain.JoinRequestCanceled),
		"rejected and canceled are distinct outcomes")

	assert.Equal(t, "Declined", InvitationStatusLabel(domain.InvitationDeclined))
	assert.Equal(t, "WEIRD", InvitationStatusLabel(domain.InvitationStatus("WEIRD")))
}
