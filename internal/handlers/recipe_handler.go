package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/anonto42/recipebox/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RecipeHandler handles recipe-related HTTP requests
type RecipeHandler struct {
	recipeRepository   repositories.RecipeRepository
	activityRepository repositories.ActivityRepository
	log                *logrus.Logger
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeRepo repositories.RecipeRepository, activityRepo repositories.ActivityRepository, log *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeRepository:   recipeRepo,
		activityRepository: activityRepo,
		log:                log,
	}
}

// RegisterRecipeRoutes registers recipe-related routes
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.GET("/recipes", h.FindRecipe)
	g.POST("/recipes", h.CreateRecipe)
	g.GET("/recipes/:id", h.GetRecipe)
	g.POST("/recipes/:id/ingredients", h.AddIngredient)
	g.DELETE("/recipes/:id/ingredients/:ingredient_id", h.RemoveIngredient)
}

func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	recipe, err := h.recipeRepository.CreateRecipe(ctx, me.ID, strings.TrimSpace(req.Name), time.Now())
	if err != nil {
		return err
	}

	recordActivity(ctx, h.activityRepository, h.log, &models.Activity{
		UserID:     me.ID,
		Kind:       models.ActivityRecipeCreated,
		TargetID:   recipe.ID,
		TargetName: recipe.Name,
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": `Created recipe named "` + recipe.Name + `"`,
		"data":    recipe,
	})
}

func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": recipe})
}

// FindRecipe looks a recipe up by ?name=. With ?mine=true only the current
// user's recipes match, otherwise the oldest recipe of that name wins.
func (h *RecipeHandler) FindRecipe(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Recipe name is required")
	}

	ctx := c.Request().Context()
	var recipe *models.Recipe
	if c.QueryParam("mine") == "true" {
		recipe, err = h.recipeRepository.FindByOwnerAndName(ctx, me.ID, name)
	} else {
		recipe, err = h.recipeRepository.FindByName(ctx, name)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": recipe})
}

// AddIngredient adds a new ingredient to one of the current user's recipes
func (h *RecipeHandler) AddIngredient(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.requireAuthor(c, id, me.ID); err != nil {
		return err
	}
	recipe, err := h.recipeRepository.AddIngredient(ctx, id, req.Name, req.Amount)
	if err != nil {
		return err
	}

	recordActivity(ctx, h.activityRepository, h.log, &models.Activity{
		UserID:     me.ID,
		Kind:       models.ActivityIngredientAdded,
		TargetID:   recipe.ID,
		TargetName: req.Name,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Added ingredient " + req.Name + " to " + recipe.Name,
		"data":    recipe,
	})
}

// RemoveIngredient removes an ingredient from one of the current user's recipes
func (h *RecipeHandler) RemoveIngredient(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ingredientID, err := parseIDParam(c, "ingredient_id")
	if err != nil {
		return err
	}

	if err := h.requireAuthor(c, id, me.ID); err != nil {
		return err
	}
	ctx := c.Request().Context()
	recipe, err := h.recipeRepository.RemoveIngredient(ctx, id, ingredientID)
	if err != nil {
		return err
	}

	recordActivity(ctx, h.activityRepository, h.log, &models.Activity{
		UserID:     me.ID,
		Kind:       models.ActivityIngredientRemoved,
		TargetID:   recipe.ID,
		TargetName: recipe.Name,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": recipe})
}

func (h *RecipeHandler) requireAuthor(c echo.Context, recipeID, userID uint) error {
	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only change your own recipes.")
	}
	return nil
}
