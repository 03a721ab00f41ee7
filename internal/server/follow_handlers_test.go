package server

import (
	"net/http"
	"testing"

	"inkstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowToggleEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	profile, _ := env.createUser(t, "fe-profile")
	_, viewerToken := env.createUser(t, "fe-viewer")

	// Follow
	resp := env.request(t, http.MethodPost, "/api/profile/"+profile.ID+"/follow", viewerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Stats models.FollowStats `json:"stats"`
	}
	decodeBody(t, resp, &body)
	assert.EqualValues(t, 1, body.Stats.Followers)
	assert.True(t, body.Stats.IsFollowing)

	// Unfollow
	resp = env.request(t, http.MethodPost, "/api/profile/"+profile.ID+"/follow", viewerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.EqualValues(t, 0, body.Stats.Followers)
	assert.False(t, body.Stats.IsFollowing)
}

func TestFollowStatsPublicRead(t *testing.T) {
	env := setupTestEnv(t)
	profile, _ := env.createUser(t, "fp-profile")
	_, viewerToken := env.createUser(t, "fp-viewer")

	resp := env.request(t, http.MethodPost, "/api/profile/"+profile.ID+"/follow", viewerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Anonymous read works and reports counts without isFollowing.
	resp = env.request(t, http.MethodGet, "/api/profile/"+profile.ID+"/follow", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Stats models.FollowStats `json:"stats"`
	}
	decodeBody(t, resp, &body)
	assert.EqualValues(t, 1, body.Stats.Followers)
	assert.False(t, body.Stats.IsFollowing)
}

func TestFollowSelfAndUnknown(t *testing.T) {
	env := setupTestEnv(t)
	viewer, viewerToken := env.createUser(t, "fs-viewer")

	resp := env.request(t, http.MethodPost, "/api/profile/"+viewer.ID+"/follow", viewerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/profile/ghost-user/follow", viewerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/profile/ghost-user/follow", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
