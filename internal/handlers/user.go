package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const profileAvatarSize = 128

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	recipeRepository repositories.RecipeRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, recipeRepo repositories.RecipeRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		recipeRepository: recipeRepo,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/index", h.Index)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:nickname", h.GetUser)
	g.PUT("/profile", h.UpdateProfile)
}

// Index returns the current user with the first page of their feed.
func (h *UserHandler) Index(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	recipes, err := h.followRepository.ListFollowedRecipes(c.Request().Context(), user.ID, 0, defaultFeedLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":    user,
			"recipes": recipes,
		},
	})
}

// GetUser returns a profile page by nickname
func (h *UserHandler) GetUser(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	nickname, err := pathParam(c, "nickname")
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByNickname(ctx, nickname)
	if err != nil {
		return err
	}
	recipes, err := h.recipeRepository.ListByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}
	followers, err := h.followRepository.CountFollowers(ctx, user.ID)
	if err != nil {
		return err
	}
	following, err := h.followRepository.CountFollowed(ctx, user.ID)
	if err != nil {
		return err
	}
	isFollowing, err := h.followRepository.IsFollowing(ctx, me.ID, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":            user,
			"avatar":          user.Avatar(profileAvatarSize),
			"recipes":         recipes,
			"followers_count": followers,
			"following_count": following,
			"is_following":    isFollowing,
		},
	})
}

// SearchUsers searches users by nickname
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	users, err := h.userRepository.SearchUsers(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": compactUsers(users)})
}

// UpdateProfile updates the authenticated user's nickname and bio
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.EditProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.UpdateProfile(c.Request().Context(), me.ID, req.Nickname, req.AboutMe)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Your changes have been saved.",
		"data":    user,
	})
}
