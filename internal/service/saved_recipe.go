package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/internal/apperrors"
	"github.com/pageza/budget-chef/backend/internal/logger"
	"github.com/pageza/budget-chef/backend/internal/models"
	"github.com/pageza/budget-chef/backend/internal/repository"
)

type SavedRecipeService struct {
	saved   repository.SavedRecipeRepository
	recipes repository.RecipeRepository
	log     *zap.Logger
}

func NewSavedRecipeService(saved repository.SavedRecipeRepository, recipes repository.RecipeRepository) *SavedRecipeService {
	return &SavedRecipeService{
		saved:   saved,
		recipes: recipes,
		log:     logger.Named("saved_recipe_service"),
	}
}

// SaveRecipe records that userID kept recipeID. A blank title is filled from the
// recipe store when the recipe exists there.
func (s *SavedRecipeService) SaveRecipe(ctx context.Context, userID, recipeID, title string) error {
	userID = strings.TrimSpace(userID)
	recipeID = strings.TrimSpace(recipeID)
	if userID == "" || recipeID == "" {
		return apperrors.InvalidInput("Missing required fields (recipeId or userId).")
	}

	title = strings.TrimSpace(title)
	if title == "" && s.recipes != nil {
		if recipe, err := s.recipes.FindByID(ctx, recipeID); err == nil {
			title = recipe.Title
		}
	}

	err := s.saved.Create(ctx, &models.SavedRecipe{
		UserID:      userID,
		RecipeID:    recipeID,
		RecipeTitle: title,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.Conflict("Recipe is already saved by this user.")
	}
	if err != nil {
		s.log.Error("failed to save recipe",
			zap.String("user_id", userID),
			zap.String("recipe_id", recipeID),
			zap.Error(err),
		)
		return apperrors.Storage("Failed to save recipe.", err)
	}
	return nil
}

// ListSaved returns the user's saved recipes, newest first. No saved recipes is an empty slice.
func (s *SavedRecipeService) ListSaved(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.InvalidInput("User id is required.")
	}

	saved, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to list saved recipes", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Storage("Failed to retrieve saved recipes.", err)
	}
	return saved, nil
}
