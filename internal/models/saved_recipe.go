package models

import "time"

// SavedRecipe records that a user kept a recipe. One row per (user, recipe).
type SavedRecipe struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UserID      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_saved_recipes_user_recipe,priority:1" json:"user_id"`
	RecipeID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_saved_recipes_user_recipe,priority:2" json:"recipe_id"`
	RecipeTitle string    `gorm:"size:255" json:"recipe_title"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}
