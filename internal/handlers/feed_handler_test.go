package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeed(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	john, token := s.login(t, "john@example.com", "john")
	susan, _ := s.login(t, "susan@example.com", "susan")
	mary, _ := s.login(t, "mary@example.com", "mary")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.recipes.CreateRecipe(ctx, susan.ID, fmt.Sprintf("susan-%d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}
	_, err := s.recipes.CreateRecipe(ctx, mary.ID, "mary-0", base)
	require.NoError(t, err)
	_, err = s.follows.Follow(ctx, john.ID, susan.ID)
	require.NoError(t, err)

	res := s.do(t, http.MethodGet, "/api/v1/feed?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, res.Code)

	recipes, _ := res.data()["recipes"].([]interface{})
	require.Len(t, recipes, 2)
	assert.Equal(t, "susan-2", recipes[0].(map[string]interface{})["name"])
	assert.Equal(t, "susan-1", recipes[1].(map[string]interface{})["name"])

	meta, _ := res.Body["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["totalItems"])
	assert.Equal(t, float64(2), meta["totalPages"])
	assert.Equal(t, true, meta["hasNextPage"])

	res = s.do(t, http.MethodGet, "/api/v1/feed?page=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	recipes, _ = res.data()["recipes"].([]interface{})
	require.Len(t, recipes, 1)
	assert.Equal(t, "susan-0", recipes[0].(map[string]interface{})["name"])
}

func TestActivityLog(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, "john@example.com", "john")

	res := s.do(t, http.MethodPost, "/api/v1/pantry", token, map[string]interface{}{"name": "flour", "amount": "1kg"})
	require.Equal(t, http.StatusCreated, res.Code)

	res = s.do(t, http.MethodGet, "/api/v1/activity", token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	activities, _ := res.Body["data"].([]interface{})
	require.Len(t, activities, 1)
	assert.Equal(t, "flour", activities[0].(map[string]interface{})["target_name"])
}
