package handlers

import (
	"net/http"

	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// PantryHandler handles pantry-related HTTP requests
type PantryHandler struct {
	pantryRepository   repositories.PantryRepository
	activityRepository repositories.ActivityRepository
	log                *logrus.Logger
}

// NewPantryHandler creates a new PantryHandler
func NewPantryHandler(pantryRepo repositories.PantryRepository, activityRepo repositories.ActivityRepository, log *logrus.Logger) *PantryHandler {
	return &PantryHandler{
		pantryRepository:   pantryRepo,
		activityRepository: activityRepo,
		log:                log,
	}
}

// RegisterPantryRoutes registers pantry-related routes
func (h *PantryHandler) RegisterPantryRoutes(g *echo.Group) {
	g.GET("/pantry", h.ListItems)
	g.POST("/pantry", h.AddItem)
	g.DELETE("/pantry/:name", h.RemoveItem)
}

func (h *PantryHandler) ListItems(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.pantryRepository.ListItems(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": items})
}

func (h *PantryHandler) AddItem(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.PantryItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	item, err := h.pantryRepository.AddItem(ctx, me.ID, req.Name, req.Amount)
	if err != nil {
		return err
	}

	recordActivity(ctx, h.activityRepository, h.log, &models.Activity{
		UserID:     me.ID,
		Kind:       models.ActivityPantryAdded,
		TargetID:   item.ID,
		TargetName: item.Name,
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "You added " + item.Name + " to the pantry.",
		"data":    item,
	})
}

// RemoveItem removes the first pantry item with the given name
func (h *PantryHandler) RemoveItem(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	item, err := h.pantryRepository.FindItemByName(ctx, me.ID, name)
	if errs.Is(err, errs.ENOTFOUND) {
		return echo.NewHTTPError(http.StatusNotFound, `No item called "`+name+`" found in the pantry`)
	} else if err != nil {
		return err
	}

	ok, err := h.pantryRepository.RemoveItem(ctx, me.ID, item.ID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "Problem removing "+item.Name)
	}

	recordActivity(ctx, h.activityRepository, h.log, &models.Activity{
		UserID:     me.ID,
		Kind:       models.ActivityPantryRemoved,
		TargetID:   item.ID,
		TargetName: item.Name,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Removed " + item.Name + " from the pantry."})
}
