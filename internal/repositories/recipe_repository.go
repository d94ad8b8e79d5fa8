package repositories

import (
	"context"
	"time"

	"github.com/anonto42/recipebox/backend/internal/errs"
	"github.com/anonto42/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

const ingredientsJoinTable = "ingredients_recipes"

// RecipeRepository defines the interface for recipe and ingredient data operations
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, ownerID uint, name string, createdAt time.Time) (*models.Recipe, error)
	AddIngredient(ctx context.Context, recipeID uint, name, amount string) (*models.Recipe, error)
	RemoveIngredient(ctx context.Context, recipeID, ingredientID uint) (*models.Recipe, error)
	GetRecipeByID(ctx context.Context, id uint) (*models.Recipe, error)
	FindByName(ctx context.Context, name string) (*models.Recipe, error)
	FindByOwnerAndName(ctx context.Context, ownerID uint, name string) (*models.Recipe, error)
	ListByAuthor(ctx context.Context, ownerID uint) ([]models.Recipe, error)
}

// PostgresRecipeRepository implements RecipeRepository on top of gorm
type PostgresRecipeRepository struct {
	db *gorm.DB
}

// NewPostgresRecipeRepository creates a new PostgresRecipeRepository
func NewPostgresRecipeRepository(db *gorm.DB) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{db: db}
}

var _ RecipeRepository = (*PostgresRecipeRepository)(nil)

func withIngredients(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("ingredient.id")
	})
}

func loadRecipe(db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withIngredients(db).First(&recipe, id).Error; err != nil {
		return nil, translate(err, "get recipe", "Recipe not found.", "")
	}
	return &recipe, nil
}

// CreateRecipe creates an empty recipe. An author cannot own two recipes with
// the same name.
func (r *PostgresRecipeRepository) CreateRecipe(ctx context.Context, ownerID uint, name string, createdAt time.Time) (*models.Recipe, error) {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	recipe := &models.Recipe{
		Name:        name,
		UserID:      ownerID,
		Timestamp:   createdAt.UTC(),
		Ingredients: []*models.Ingredient{},
	}
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, translate(err, "create recipe", "", "You already have a recipe named "+name+".")
	}
	return recipe, nil
}

// AddIngredient creates a new ingredient row and attaches it to the recipe.
func (r *PostgresRecipeRepository) AddIngredient(ctx context.Context, recipeID uint, name, amount string) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found models.Recipe
		if err := tx.First(&found, recipeID).Error; err != nil {
			return translate(err, "get recipe", "Recipe not found.", "")
		}
		ingredient := &models.Ingredient{Name: name, Amount: amount}
		if err := tx.Create(ingredient).Error; err != nil {
			return translate(err, "create ingredient", "", "")
		}
		if err := tx.Model(&found).Association("Ingredients").Append(ingredient); err != nil {
			return translate(err, "append ingredient", "", "")
		}
		var err error
		recipe, err = loadRecipe(tx, recipeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// RemoveIngredient detaches an ingredient from the recipe. The ingredient row
// itself is deleted once no recipe refers to it.
func (r *PostgresRecipeRepository) RemoveIngredient(ctx context.Context, recipeID, ingredientID uint) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found models.Recipe
		if err := tx.First(&found, recipeID).Error; err != nil {
			return translate(err, "get recipe", "Recipe not found.", "")
		}

		var members int64
		err := tx.Table(ingredientsJoinTable).
			Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
			Count(&members).Error
		if err != nil {
			return translate(err, "count ingredient membership", "", "")
		}
		if members == 0 {
			return errs.Errorf(errs.ENOTFOUND, "Ingredient not found in this recipe.")
		}

		if err := tx.Model(&found).Association("Ingredients").Delete(&models.Ingredient{ID: ingredientID}); err != nil {
			return translate(err, "delete ingredient association", "", "")
		}

		var refs int64
		err = tx.Table(ingredientsJoinTable).Where("ingredient_id = ?", ingredientID).Count(&refs).Error
		if err != nil {
			return translate(err, "count ingredient references", "", "")
		}
		if refs == 0 {
			if err := tx.Delete(&models.Ingredient{}, ingredientID).Error; err != nil {
				return translate(err, "delete ingredient", "", "")
			}
		}

		recipe, err = loadRecipe(tx, recipeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipeByID retrieves a recipe with its author and ingredients
func (r *PostgresRecipeRepository) GetRecipeByID(ctx context.Context, id uint) (*models.Recipe, error) {
	return loadRecipe(r.db.WithContext(ctx), id)
}

// FindByName returns the oldest recipe with this name. Names are only unique
// per author, so other authors may have recipes of the same name.
func (r *PostgresRecipeRepository) FindByName(ctx context.Context, name string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := withIngredients(r.db.WithContext(ctx)).
		Where("name = ?", name).
		Order("id").
		First(&recipe).Error
	if err != nil {
		return nil, translate(err, "find recipe by name", "Recipe "+name+" not found.", "")
	}
	return &recipe, nil
}

func (r *PostgresRecipeRepository) FindByOwnerAndName(ctx context.Context, ownerID uint, name string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := withIngredients(r.db.WithContext(ctx)).
		Where("user_id = ? AND name = ?", ownerID, name).
		First(&recipe).Error
	if err != nil {
		return nil, translate(err, "find recipe by owner and name", "Recipe "+name+" not found.", "")
	}
	return &recipe, nil
}

// ListByAuthor returns the recipes of one author, newest first.
func (r *PostgresRecipeRepository) ListByAuthor(ctx context.Context, ownerID uint) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := withIngredients(r.db.WithContext(ctx)).
		Where("user_id = ?", ownerID).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, translate(err, "list recipes by author", "", "")
	}
	return recipes, nil
}
