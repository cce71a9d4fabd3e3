package restapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects_ListMine(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/mine", r.URL.Path)
		fmt.Fprint(w, `{"projects":[
			{"id":"p-1","title":"Atlas","owner":{"id":"u-1","name":"Ada"}},
			{"id":"p-2","name":"Borealis","owner_id":"u-2"}
		]}`)
	})
	g := NewProjectGateway(c)

	projects, err := g.ListMine(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Atlas", projects[0].Title)
	assert.Equal(t, "u-1", projects[0].OwnerID)
	assert.True(t, projects[0].OwnedBy("u-1"))

	// Legacy shape: name instead of title, flattened owner id.
	assert.Equal(t, "Borealis", projects[1].Title)
	assert.Equal(t, "u-2", projects[1].OwnerID)
}

func TestProjects_ListMine_GatewayError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"db down"}`)
	})
	g := NewProjectGateway(c)

	_, err := g.ListMine(context.Background())
	require.Error(t, err)
}
