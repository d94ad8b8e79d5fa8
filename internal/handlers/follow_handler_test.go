package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowHandlers(t *testing.T) {
	s := newTestServer(t)
	john, token := s.login(t, "john@example.com", "john")
	susan, _ := s.login(t, "susan@example.com", "susan")

	t.Run("Follow", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/v1/follow/susan", token, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "You are now following susan!", res.Body["message"])

		following, err := s.follows.IsFollowing(context.Background(), john.ID, susan.ID)
		require.NoError(t, err)
		assert.True(t, following)
	})

	t.Run("Follow twice", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/v1/follow/susan", token, nil)
		assert.Equal(t, http.StatusConflict, res.Code)
		assert.Equal(t, "Cannot follow susan.", res.Body["error"])
	})

	t.Run("Follow yourself", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/v1/follow/john", token, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "You can't follow yourself!", res.Body["error"])
	})

	t.Run("Unknown user", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/v1/follow/nobody", token, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Followers page", func(t *testing.T) {
		res := s.do(t, http.MethodGet, "/api/v1/followers/susan", token, nil)
		require.Equal(t, http.StatusOK, res.Code)
		followers, _ := res.data()["followers"].([]interface{})
		followed, _ := res.data()["followed"].([]interface{})
		assert.Len(t, followers, 2)
		assert.Len(t, followed, 1)
	})

	t.Run("Unfollow", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/v1/unfollow/susan", token, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "You have stopped following susan.", res.Body["message"])
	})

	t.Run("Unfollow without following", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/v1/unfollow/susan", token, nil)
		assert.Equal(t, http.StatusConflict, res.Code)
		assert.Equal(t, "Cannot unfollow susan.", res.Body["error"])
	})

	t.Run("Unfollow yourself", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/v1/unfollow/john", token, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	assert.Equal(t, []string{models.ActivityFollow, models.ActivityUnfollow}, s.activities.kinds())
}

func TestFollowSurvivesActivityFailure(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, "john@example.com", "john")
	s.login(t, "susan@example.com", "susan")
	s.activities.fail = true

	res := s.do(t, http.MethodPost, "/api/v1/follow/susan", token, nil)
	assert.Equal(t, http.StatusOK, res.Code)
}
