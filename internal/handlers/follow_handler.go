package handlers

import (
	"net/http"

	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository   repositories.FollowRepository
	userRepository     repositories.UserRepository
	activityRepository repositories.ActivityRepository
	log                *logrus.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, activityRepo repositories.ActivityRepository, log *logrus.Logger) *FollowHandler {
	return &FollowHandler{
		followRepository:   followRepo,
		userRepository:     userRepo,
		activityRepository: activityRepo,
		log:                log,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:nickname", h.FollowUser)
	g.POST("/unfollow/:nickname", h.UnfollowUser)
	g.GET("/followers/:nickname", h.GetFollowers)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	nickname, err := pathParam(c, "nickname")
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByNickname(ctx, nickname)
	if err != nil {
		return err
	}
	if target.ID == me.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "You can't follow yourself!")
	}

	ok, err := h.followRepository.Follow(ctx, me.ID, target.ID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "Cannot follow "+nickname+".")
	}

	recordActivity(ctx, h.activityRepository, h.log, &models.Activity{
		UserID:     me.ID,
		Kind:       models.ActivityFollow,
		TargetID:   target.ID,
		TargetName: target.Nickname,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "You are now following " + nickname + "!",
		"data":    echo.Map{"following": true},
	})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	nickname, err := pathParam(c, "nickname")
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByNickname(ctx, nickname)
	if err != nil {
		return err
	}
	if target.ID == me.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "You can't unfollow yourself!")
	}

	ok, err := h.followRepository.Unfollow(ctx, me.ID, target.ID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "Cannot unfollow "+nickname+".")
	}

	recordActivity(ctx, h.activityRepository, h.log, &models.Activity{
		UserID:     me.ID,
		Kind:       models.ActivityUnfollow,
		TargetID:   target.ID,
		TargetName: target.Nickname,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "You have stopped following " + nickname + ".",
		"data":    echo.Map{"following": false},
	})
}

// GetFollowers lists who follows a user and whom the user follows
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
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
	followers, err := h.followRepository.GetFollowers(ctx, user.ID)
	if err != nil {
		return err
	}
	followed, err := h.followRepository.GetFollowed(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":      user.ToCompact(),
			"followers": compactUsers(followers),
			"followed":  compactUsers(followed),
		},
	})
}

func compactUsers(users []models.User) []models.UserCompact {
	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return compact
}
