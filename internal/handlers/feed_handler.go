package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(followRepo repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{followRepository: followRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the recipes of followed users, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}

	ctx := c.Request().Context()
	recipes, err := h.followRepository.ListFollowedRecipes(ctx, user.ID, (page-1)*limit, limit)
	if err != nil {
		return err
	}
	totalItems, err := h.followRepository.CountFollowedRecipes(ctx, user.ID)
	if err != nil {
		return err
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"recipes": recipes,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      totalItems,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
