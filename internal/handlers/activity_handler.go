package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ActivityHandler serves the current user's activity log
type ActivityHandler struct {
	activityRepository repositories.ActivityRepository
}

func NewActivityHandler(activityRepo repositories.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepository: activityRepo}
}

func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activity", h.ListActivity)
}

func (h *ActivityHandler) ListActivity(c echo.Context) error {
	me, err := currentUser(c)
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

	activities, err := h.activityRepository.ListByUser(c.Request().Context(), me.ID, int64((page-1)*limit), int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": activities})
}
