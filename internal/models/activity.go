package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity kinds recorded in the activity log.
const (
	ActivityFollow            = "follow"
	ActivityUnfollow          = "unfollow"
	ActivityRecipeCreated     = "recipe_created"
	ActivityIngredientAdded   = "ingredient_added"
	ActivityIngredientRemoved = "ingredient_removed"
	ActivityPantryAdded       = "pantry_added"
	ActivityPantryRemoved     = "pantry_removed"
)

// Activity is a user action stored in MongoDB
type Activity struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     uint               `json:"user_id" bson:"user_id"`
	Kind       string             `json:"kind" bson:"kind"`
	TargetID   uint               `json:"target_id,omitempty" bson:"target_id,omitempty"`
	TargetName string             `json:"target_name,omitempty" bson:"target_name,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
