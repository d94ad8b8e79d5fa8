package models

import "time"

// Ingredient is a name and free-text amount. A fresh row is created every
// time an ingredient is added to a recipe.
type Ingredient struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Name    string    `json:"name" gorm:"size:64;index"`
	Amount  string    `json:"amount" gorm:"size:12;index"`
	Recipes []*Recipe `json:"-" gorm:"many2many:ingredients_recipes;"`
}

func (Ingredient) TableName() string {
	return "ingredient"
}

// Recipe is owned by its author. Names are unique per author.
type Recipe struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"size:64;index;uniqueIndex:idx_recipe_author_name"`
	UserID      uint          `json:"user_id" gorm:"not null;uniqueIndex:idx_recipe_author_name"`
	Author      *User         `json:"author,omitempty" gorm:"foreignKey:UserID"`
	Timestamp   time.Time     `json:"timestamp" gorm:"column:timestamp;index"`
	Ingredients []*Ingredient `json:"ingredients" gorm:"many2many:ingredients_recipes;"`
}

func (Recipe) TableName() string {
	return "recipe"
}

// CreateRecipeRequest defines the request body for creating a recipe.
type CreateRecipeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// IngredientRequest defines the request body for adding an ingredient.
type IngredientRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=64"`
	Amount string `json:"amount" validate:"required,min=1,max=12"`
}
