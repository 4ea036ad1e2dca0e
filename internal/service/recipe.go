package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/internal/apperrors"
	"github.com/pageza/budget-chef/backend/internal/logger"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/types"
)

const imageURLExpiry = 15 * time.Minute

type RecipeService struct {
	recipes repository.RecipeRepository
	images  ImagePresigner
	log     *zap.Logger
}

// NewRecipeService creates a recipe service. images may be nil when no bucket is configured.
func NewRecipeService(recipes repository.RecipeRepository, images ImagePresigner) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		images:  images,
		log:     logger.Named("recipe_service"),
	}
}

// GetRecipeDetail loads a recipe and marks which ingredients the caller's pantry covers.
func (s *RecipeService) GetRecipeDetail(ctx context.Context, id string, pantry []string) (*types.RecipeDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.InvalidInput("Recipe id is required.")
	}

	recipe, err := s.recipes.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Recipe not found.")
	}
	if err != nil {
		s.log.Error("failed to fetch recipe", zap.String("recipe_id", id), zap.Error(err))
		return nil, apperrors.Storage("Failed to fetch recipe details.", err)
	}

	have := NewPantry(pantry)
	lines := make([]types.IngredientLine, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		lines[i] = types.IngredientLine{
			Name:     ing.IngredientName,
			Quantity: ing.Quantity,
			IsPantry: have.Covers(ing.IngredientName),
		}
	}

	instructions := []string(recipe.Instructions)
	if instructions == nil {
		instructions = []string{}
	}
	tags := []string(recipe.DietaryTags)
	if tags == nil {
		tags = []string{}
	}

	detail := &types.RecipeDetail{
		ID:                 recipe.ID,
		Title:              recipe.Title,
		TotalPrepTime:      recipe.TotalPrepTime,
		TotalEstimatedCost: recipe.TotalEstimatedCost.Round(2).InexactFloat64(),
		Instructions:       instructions,
		Ingredients:        lines,
		DietaryTags:        tags,
	}

	if recipe.ImageKey != "" && s.images != nil {
		url, err := s.images.GeneratePresignedURL(ctx, recipe.ImageKey, imageURLExpiry)
		if err != nil {
			// the detail is still useful without its picture
			s.log.Warn("failed to presign recipe image", zap.String("recipe_id", id), zap.Error(err))
		} else {
			detail.ImageURL = url
		}
	}

	return detail, nil
}
