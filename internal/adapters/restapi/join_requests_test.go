package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collabclient/internal/domain"
)

func TestJoinRequests_ListMine_NormalizesShapes(t *testing.T) {
	item := `{
		"id": "jr-1",
		"requester": {"id": "u-2", "name": "Ada", "email": "ada@example.com"},
		"project": {"id": "p-1", "title": "Atlas", "owner": {"id": "u-1"}},
		"message": "hi",
		"status": "pending",
		"created_at": "2026-08-01T12:00:00Z"
	}`
	legacyItem := `{
		"id": "jr-1",
		"user": {"id": "u-2", "display_name": "Ada", "email": "ada@example.com"},
		"project": {"id": "p-1", "name": "Atlas", "owner_id": "u-1"},
		"message": "hi",
		"status": "PENDING",
		"created_at": "2026-08-01T12:00:00Z"
	}`

	tests := []struct {
		name string
		body string
	}{
		{name: "envelope with nested objects", body: `{"data":[` + item + `]}`},
		{name: "raw array", body: `[` + item + `]`},
		{name: "legacy wrapper with flattened fields", body: `{"requests":[` + legacyItem + `]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/join-requests/mine", r.URL.Path)
				fmt.Fprint(w, tt.body)
			})
			g := NewJoinRequestGateway(c)

			reqs, err := g.ListMine(context.Background())
			require.NoError(t, err)
			require.Len(t, reqs, 1)

			got := reqs[0]
			assert.Equal(t, "jr-1", got.ID)
			assert.Equal(t, domain.UserRef{ID: "u-2", Name: "Ada", Email: "ada@example.com"}, got.Requester)
			assert.Equal(t, domain.ProjectRef{ID: "p-1", Title: "Atlas", OwnerID: "u-1"}, got.Project)
			assert.Equal(t, domain.JoinRequestPending, got.Status)
			assert.True(t, got.Pending())
		})
	}
}

func TestJoinRequests_ListForProject(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/p-1/join-requests", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"id":"jr-9","status":"ACCEPTED","project":{"id":"p-1","owner_id":"u-1"}}]}`)
	})
	g := NewJoinRequestGateway(c)

	reqs, err := g.ListForProject(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, domain.JoinRequestAccepted, reqs[0].Status)
}

func TestJoinRequests_Create(t *testing.T) {
	var body map[string]string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/join-requests", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"data":{"id":"jr-new","status":"PENDING","project":{"id":"p-7"}}}`)
	})
	g := NewJoinRequestGateway(c)

	req, err := g.Create(context.Background(), "p-7", "let me in")
	require.NoError(t, err)
	assert.Equal(t, "jr-new", req.ID)
	assert.Equal(t, map[string]string{"project_id": "p-7", "message": "let me in"}, body)
}

func TestJoinRequests_Accept(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/join-requests/jr-1/accept", r.URL.Path)
		fmt.Fprint(w, `{"request":{"id":"jr-1","status":"ACCEPTED"}}`)
	})
	g := NewJoinRequestGateway(c)

	req, err := g.Accept(context.Background(), "jr-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JoinRequestAccepted, req.Status)
}

func TestJoinRequests_Cancel_GatewayError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error":{"code":"conflict","message":"already resolved"}}`)
	})
	g := NewJoinRequestGateway(c)

	_, err := g.Cancel(context.Background(), "jr-1")

	var gerr *domain.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "joinRequests.cancel", gerr.Op)
	assert.Equal(t, http.StatusConflict, gerr.Status)
}

func TestJoinRequests_MutationWithoutID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	})
	g := NewJoinRequestGateway(c)

	_, err := g.Reject(context.Background(), "jr-1")
	assert.Error(t, err)
}
