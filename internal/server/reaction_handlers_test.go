package server

import (
	"net/http"
	"testing"

	"inkstream/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionToggleEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := env.createUser(t, "re-author")
	_, fanToken := env.createUser(t, "re-fan")
	post := env.publishPost(t, authorToken, "Reacted Post")

	// Toggle on
	resp := env.request(t, http.MethodPost, "/api/posts/"+post.Slug+"/reactions", fanToken, map[string]any{
		"type": "like",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result service.ToggleResult
	decodeBody(t, resp, &result)
	assert.True(t, result.Active)
	assert.Equal(t, 1, result.Totals.Likes)

	// Toggle off
	resp = env.request(t, http.MethodPost, "/api/posts/"+post.ID+"/reactions", fanToken, map[string]any{
		"type": "like",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.False(t, result.Active)
	assert.Equal(t, 0, result.Totals.Likes)
}

func TestReactionStateForViewer(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := env.createUser(t, "rs-author")
	_, fanToken := env.createUser(t, "rs-fan")
	post := env.publishPost(t, authorToken, "Stateful Post")

	resp := env.request(t, http.MethodPost, "/api/posts/"+post.ID+"/reactions", fanToken, map[string]any{
		"type": "clap",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The fan sees their own reaction.
	resp = env.request(t, http.MethodGet, "/api/posts/"+post.ID+"/reactions", fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state service.ReactionState
	decodeBody(t, resp, &state)
	assert.Equal(t, 1, state.Totals.Claps)
	require.Len(t, state.UserReactions, 1)

	// Anonymous viewers see totals only.
	resp = env.request(t, http.MethodGet, "/api/posts/"+post.ID+"/reactions", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &state)
	assert.Equal(t, 1, state.Totals.Claps)
	assert.Empty(t, state.UserReactions)
}

func TestReactionInvalidTypeEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "ri-user")
	post := env.publishPost(t, token, "Strict Post")

	resp := env.request(t, http.MethodPost, "/api/posts/"+post.ID+"/reactions", token, map[string]any{
		"type": "fire",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
