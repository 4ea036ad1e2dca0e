package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/budget-chef/backend/internal/models"
)

// SavedRecipeRepository defines saved-recipe data access.
type SavedRecipeRepository interface {
	Create(ctx context.Context, saved *models.SavedRecipe) error
	ListByUser(ctx context.Context, userID string) ([]models.SavedRecipe, error)
}

type savedRecipeRepository struct {
	db *gorm.DB
}

// NewSavedRecipeRepository creates a new saved-recipe repository.
func NewSavedRecipeRepository(db *gorm.DB) SavedRecipeRepository {
	return &savedRecipeRepository{db: db}
}

// Create inserts the row; a second save of the same pair returns ErrDuplicate.
func (r *savedRecipeRepository) Create(ctx context.Context, saved *models.SavedRecipe) error {
	return translate(r.db.WithContext(ctx).Create(saved).Error)
}

// ListByUser returns the user's saved recipes, newest first.
func (r *savedRecipeRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	saved := make([]models.SavedRecipe, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&saved).Error
	if err != nil {
		return nil, err
	}
	return saved, nil
}
